package character

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-prospect/internal/property"
	"github.com/pixil98/go-prospect/internal/recorder"
)

var ErrInvalidID = errors.New("invalid character id")

// AnySlot matches every slot of a player.
const AnySlot = -1

// ID identifies a character by its owning player and character slot.
type ID struct {
	PlayerID string
	Slot     int
}

// ParseID parses "playerId" or "playerId-slot". Omitting the slot yields a
// wildcard.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, fmt.Errorf("%w: empty", ErrInvalidID)
	}

	player, slot, found := strings.Cut(s, "-")
	if player == "" {
		return ID{}, fmt.Errorf("%w: %q has no player id", ErrInvalidID, s)
	}
	if !found {
		return ID{PlayerID: player, Slot: AnySlot}, nil
	}

	n, err := strconv.Atoi(slot)
	if err != nil || n < 0 {
		return ID{}, fmt.Errorf("%w: %q has a bad slot", ErrInvalidID, s)
	}
	return ID{PlayerID: player, Slot: n}, nil
}

// ParseIDs parses a comma separated list of ids. Any bad entry fails the
// whole list.
func ParseIDs(s string) ([]ID, error) {
	var ids []ID
	for _, part := range strings.Split(s, ",") {
		id, err := ParseID(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Matches reports whether both ids name the same player and either slot is
// a wildcard or the slots are equal.
func (id ID) Matches(other ID) bool {
	if id.PlayerID != other.PlayerID {
		return false
	}
	return id.Slot == AnySlot || other.Slot == AnySlot || id.Slot == other.Slot
}

func (id ID) String() string {
	if id.Slot == AnySlot {
		return id.PlayerID
	}
	return fmt.Sprintf("%s-%d", id.PlayerID, id.Slot)
}

// idFromFields reads the PlayerCharacterID struct out of a field list.
func idFromFields(fields property.List) (ID, error) {
	cid, err := fields.Struct(recorder.FieldCharacterID)
	if err != nil {
		return ID{}, err
	}
	player, err := cid.Str(recorder.FieldPlayerID)
	if err != nil {
		return ID{}, fmt.Errorf("%s: %w", recorder.FieldCharacterID, err)
	}
	slot, err := cid.Int(recorder.FieldSlot)
	if err != nil {
		return ID{}, fmt.Errorf("%s: %w", recorder.FieldCharacterID, err)
	}
	return ID{PlayerID: player, Slot: int(slot)}, nil
}

// RecordID reads the character id of a player or player state recorder.
func RecordID(r *recorder.Record) (ID, error) {
	fields, err := r.Fields()
	if err != nil {
		return ID{}, err
	}
	return idFromFields(fields)
}
