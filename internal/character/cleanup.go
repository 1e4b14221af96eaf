package character

import (
	"log/slog"

	"github.com/pixil98/go-prospect/internal/recorder"
)

// Cleanup removes every player state, rocket spawn and rocket recorder no
// character owns. It returns the removed records, or nothing when the
// pools are empty.
func Cleanup(store Store) ([]*recorder.Record, error) {
	arr, err := store.Recorders()
	if err != nil {
		return nil, err
	}

	res, err := ResolveArray(arr)
	if err != nil {
		return nil, err
	}

	orphans := res.Unowned()
	if len(orphans) == 0 {
		slog.Info("no unowned recorders")
		return nil, nil
	}

	remove := make(map[int]bool, len(orphans))
	for _, r := range orphans {
		slog.Info("removing unowned recorder", "recorder", r.String())
		remove[r.Index] = true
	}

	if err := store.SetRecorders(arr.Rebuild(remove, nil)); err != nil {
		return nil, err
	}
	return orphans, nil
}
