package prospect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/text/cases"
)

var ErrInvalidSetting = errors.New("invalid setting")

const (
	pathName       = "ProspectInfo.ProspectID"
	pathPrivacy    = "ProspectInfo.LobbyPrivacy"
	pathDifficulty = "ProspectInfo.Difficulty"
	pathHardcore   = "ProspectInfo.NoRespawns"
	pathDropZone   = "ProspectInfo.SelectedDropPoint"
)

var (
	Privacies    = []string{"Public", "FriendsOnly", "Private"}
	Difficulties = []string{"Easy", "Medium", "Hard", "Extreme"}
)

var fold = cases.Fold()

func (p *Prospect) Name() string       { return gjson.GetBytes(p.header, pathName).String() }
func (p *Prospect) Privacy() string    { return gjson.GetBytes(p.header, pathPrivacy).String() }
func (p *Prospect) Difficulty() string { return gjson.GetBytes(p.header, pathDifficulty).String() }
func (p *Prospect) Hardcore() bool     { return gjson.GetBytes(p.header, pathHardcore).Bool() }
func (p *Prospect) DropZone() int      { return int(gjson.GetBytes(p.header, pathDropZone).Int()) }

func (p *Prospect) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidSetting)
	}
	return p.set(pathName, name)
}

// SetPrivacy accepts any casing of a known lobby privacy.
func (p *Prospect) SetPrivacy(v string) error {
	canonical, err := normalize("privacy", v, Privacies)
	if err != nil {
		return err
	}
	return p.set(pathPrivacy, canonical)
}

// SetDifficulty accepts any casing of a known difficulty.
func (p *Prospect) SetDifficulty(v string) error {
	canonical, err := normalize("difficulty", v, Difficulties)
	if err != nil {
		return err
	}
	return p.set(pathDifficulty, canonical)
}

func (p *Prospect) SetHardcore(v bool) error {
	return p.set(pathHardcore, v)
}

func (p *Prospect) SetDropZone(v int) error {
	if v < 0 {
		return fmt.Errorf("%w: drop zone %d is negative", ErrInvalidSetting, v)
	}
	return p.set(pathDropZone, v)
}

func (p *Prospect) set(path string, v any) error {
	header, err := sjson.SetBytes(p.header, path, v)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	p.header = header
	return nil
}

func normalize(setting, v string, allowed []string) (string, error) {
	folded := fold.String(strings.TrimSpace(v))
	for _, a := range allowed {
		if fold.String(a) == folded {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q must be one of %s", ErrInvalidSetting, setting, v, strings.Join(allowed, ", "))
}
