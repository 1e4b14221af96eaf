package command

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/display"
	"github.com/pixil98/go-prospect/internal/prospect"
)

// NewInfoCmd creates the info command.
func NewInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <save>",
		Short: "Show prospect settings and members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prospect.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			settings := display.NewTable(out, "Setting", "Value")
			settings.AddRow("Name", p.Name())
			settings.AddRow("Privacy", p.Privacy())
			settings.AddRow("Difficulty", p.Difficulty())
			settings.AddRow("Hardcore", strconv.FormatBool(p.Hardcore()))
			settings.AddRow("Drop zone", p.DropZone())
			settings.Print()

			members := p.Members()
			fmt.Fprintf(out, "\nMembers (%d):\n", len(members))
			if len(members) > 0 {
				tbl := display.NewTable(out, "ID", "Account", "Character", "Experience")
				for _, m := range members {
					tbl.AddRow(
						memberKey(m),
						m.AccountName,
						m.CharacterName,
						humanize.Comma(m.Experience),
					)
				}
				tbl.Print()
			}

			blobMembers, err := p.BlobMembers()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSave data members: %d\n", len(blobMembers))
			for _, w := range memberMismatches(members, blobMembers) {
				fmt.Fprintln(out, display.Wrap(w))
			}
			return nil
		},
	}
}

func memberKey(m prospect.Member) string {
	return fmt.Sprintf("%s-%d", m.UserID, m.Slot)
}

// memberMismatches describes members present in only one of the two
// membership lists.
func memberMismatches(header, blob []prospect.Member) []string {
	inHeader := make(map[string]bool, len(header))
	for _, m := range header {
		inHeader[memberKey(m)] = true
	}
	inBlob := make(map[string]bool, len(blob))
	for _, m := range blob {
		inBlob[memberKey(m)] = true
	}

	var out []string
	for _, m := range header {
		if !inBlob[memberKey(m)] {
			out = append(out, fmt.Sprintf("warning: member %s is listed in the header but not in the save data", memberKey(m)))
		}
	}
	for _, m := range blob {
		if !inHeader[memberKey(m)] {
			out = append(out, fmt.Sprintf("warning: member %s is in the save data but not listed in the header", memberKey(m)))
		}
	}
	return out
}
