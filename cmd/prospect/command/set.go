package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/prospect"
)

type setting struct {
	get func(p *prospect.Prospect) string
	set func(p *prospect.Prospect, v string) error
}

var settings = map[string]setting{
	"name": {
		get: (*prospect.Prospect).Name,
		set: (*prospect.Prospect).SetName,
	},
	"privacy": {
		get: (*prospect.Prospect).Privacy,
		set: (*prospect.Prospect).SetPrivacy,
	},
	"difficulty": {
		get: (*prospect.Prospect).Difficulty,
		set: (*prospect.Prospect).SetDifficulty,
	},
	"hardcore": {
		get: func(p *prospect.Prospect) string { return strconv.FormatBool(p.Hardcore()) },
		set: func(p *prospect.Prospect, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: hardcore %q is not a boolean", prospect.ErrInvalidSetting, v)
			}
			return p.SetHardcore(b)
		},
	},
	"dropzone": {
		get: func(p *prospect.Prospect) string { return strconv.Itoa(p.DropZone()) },
		set: func(p *prospect.Prospect, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: drop zone %q is not a number", prospect.ErrInvalidSetting, v)
			}
			return p.SetDropZone(n)
		},
	},
}

// NewSetCmd creates the set command.
func NewSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <save> name|privacy|difficulty|hardcore|dropzone <value>",
		Short:     "Change a prospect setting",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"name", "privacy", "difficulty", "hardcore", "dropzone"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, key, value := args[0], strings.ToLower(args[1]), args[2]

			s, ok := settings[key]
			if !ok {
				return fmt.Errorf("%w: unknown setting %q", prospect.ErrInvalidSetting, args[1])
			}

			return a.edit(cmd, path, func(cmd *cobra.Command, p *prospect.Prospect) (string, error) {
				before := s.get(p)
				if err := s.set(p, value); err != nil {
					return "", err
				}
				after := s.get(p)
				if before == after {
					return "", nil
				}
				return fmt.Sprintf("Changing %s from %q to %q.", key, before, after), nil
			})
		},
	}
}
