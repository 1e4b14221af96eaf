package command

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/display"
	"github.com/pixil98/go-prospect/internal/prebuilt"
	"github.com/pixil98/go-prospect/internal/prospect"
)

// NewPrebuiltCmd creates the prebuilt command and its subcommands.
func NewPrebuiltCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prebuilt",
		Short: "List or remove prebuilt structures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newPrebuiltListCmd(),
		newPrebuiltRemoveCmd(a),
		newPrebuiltClearCmd(a),
	)

	return cmd
}

func newPrebuiltListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <save>",
		Short: "List prebuilt structures with their ordinals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prospect.Load(args[0])
			if err != nil {
				return err
			}
			structures, err := prebuilt.List(p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Prebuilt structures (%d):\n", len(structures))
			if len(structures) == 0 {
				return nil
			}

			tbl := display.NewTable(out, "#", "Name", "Recorder", "Actors", "Size")
			for _, s := range structures {
				actors := "?"
				if ids, err := s.Actors(); err == nil {
					actors = fmt.Sprint(len(ids))
				}
				tbl.AddRow(s.Ordinal, s.Name, s.Record.Index, actors, humanize.Bytes(uint64(s.Record.Size())))
			}
			tbl.Print()
			return nil
		},
	}
}

func newPrebuiltRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <save> <ordinal[,ordinal...]>",
		Short: "Remove prebuilt structures and the recorders only they reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinals, err := prebuilt.ParseOrdinals(args[1])
			if err != nil {
				return err
			}

			return a.edit(cmd, args[0], func(cmd *cobra.Command, p *prospect.Prospect) (string, error) {
				removal, err := prebuilt.Remove(p, ordinals)
				if err != nil {
					return "", err
				}
				return describeStructureRemoval(removal), nil
			})
		},
	}
}

func newPrebuiltClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <save>",
		Short: "Remove every prebuilt structure and the recorders only they reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], func(cmd *cobra.Command, p *prospect.Prospect) (string, error) {
				removal, err := prebuilt.Clear(p)
				if err != nil {
					return "", err
				}
				return describeStructureRemoval(removal), nil
			})
		},
	}
}

func describeStructureRemoval(r *prebuilt.Removal) string {
	if r.Empty() {
		return ""
	}
	msg := fmt.Sprintf("Removing %d structure(s) and %d dependent recorder(s).", len(r.Structures), len(r.Dependents))
	if len(r.Ambiguous) > 0 {
		msg += fmt.Sprintf("\nSkipped %d actor(s) referenced by several recorders: %v", len(r.Ambiguous), r.Ambiguous)
	}
	return display.Wrap(msg)
}
