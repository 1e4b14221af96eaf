package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/character"
	"github.com/pixil98/go-prospect/internal/display"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/recorder"
)

// characterView is the data available to list --format templates.
type characterView struct {
	ID          string
	PlayerID    string
	Slot        int
	Name        string
	HasLocation bool
	Location    string
	X, Y, Z     float32
}

func newCharacterView(c *character.Character) characterView {
	v := characterView{
		ID:       c.ID.String(),
		PlayerID: c.ID.PlayerID,
		Slot:     c.ID.Slot,
		Name:     c.Name,
	}
	if loc, ok := c.Location(); ok {
		v.HasLocation = true
		v.Location = loc.String()
		v.X, v.Y, v.Z = loc.X, loc.Y, loc.Z
	}
	return v
}

// NewListCmd creates the list command.
func NewListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <save>",
		Short: "List characters and unowned recorders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			var tmpl *display.Template
			if format != "" {
				var err error
				tmpl, err = display.ParseTemplate(format)
				if err != nil {
					return err
				}
			}

			p, err := prospect.Load(args[0])
			if err != nil {
				return err
			}
			arr, err := p.Recorders()
			if err != nil {
				return err
			}
			res, err := character.ResolveArray(arr)
			if err != nil {
				return err
			}
			res.Sort()

			out := cmd.OutOrStdout()
			if tmpl != nil {
				for _, c := range res.Characters {
					line, err := tmpl.Expand(newCharacterView(c))
					if err != nil {
						return err
					}
					fmt.Fprintln(out, line)
				}
			} else {
				printCharacters(out, res.Characters)
			}

			printUnowned(out, res)
			return nil
		},
	}

	cmd.Flags().String("format", "", "template for each character, e.g. '{{ .ID }} {{ .Name }}'")

	return cmd
}

func printCharacters(w io.Writer, chars []*character.Character) {
	fmt.Fprintf(w, "Characters (%d):\n", len(chars))
	if len(chars) == 0 {
		return
	}

	tbl := display.NewTable(w, "ID", "Name", "Rocket spawn")
	for _, c := range chars {
		v := newCharacterView(c)
		loc := "-"
		if v.HasLocation {
			loc = v.Location
		}
		tbl.AddRow(v.ID, v.Name, loc)
	}
	tbl.Print()
}

func printUnowned(w io.Writer, res *character.Resolution) {
	for _, r := range res.UnownedPlayerStates {
		id, err := character.RecordID(r)
		owner := id.String()
		if err != nil {
			owner = "unknown"
		}
		warn(w, fmt.Sprintf("unowned player state %s for %s", r, owner))
	}
	for _, r := range res.UnownedRocketSpawns {
		warn(w, fmt.Sprintf("unowned rocket spawn %s for actor %s", r, actorLabel(r)))
	}
	for _, r := range res.UnownedRockets {
		warn(w, fmt.Sprintf("unowned rocket %s for actor %s", r, actorLabel(r)))
	}
}

func actorLabel(r *recorder.Record) string {
	id, ok, err := r.ActorID()
	if err != nil || !ok {
		return "unknown"
	}
	return fmt.Sprint(id)
}

func warn(w io.Writer, msg string) {
	fmt.Fprintln(w, display.Wrap("warning: "+msg))
}
