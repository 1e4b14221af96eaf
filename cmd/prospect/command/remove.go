package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/character"
	"github.com/pixil98/go-prospect/internal/prospect"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <save> <id[,id...]>",
		Short: "Remove characters and everything they own",
		Long: "Remove characters by player id (every slot) or player id and slot (id-slot). " +
			"Membership entries, history entries and the character's recorders are removed together.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := character.ParseIDs(args[1])
			if err != nil {
				return err
			}

			return a.edit(cmd, args[0], func(cmd *cobra.Command, p *prospect.Prospect) (string, error) {
				removal, err := character.RemovePlayers(p, targets)
				if err != nil {
					return "", err
				}
				if removal.Empty() {
					return "", nil
				}

				ids := make([]string, len(removal.Characters))
				for i, c := range removal.Characters {
					ids[i] = c.ID.String()
					if c.Name != "" {
						ids[i] += " (" + c.Name + ")"
					}
				}
				return fmt.Sprintf(
					"Removing %d character(s): %s\n%d recorder(s), %d history entries, %d header and %d blob member entries.",
					len(removal.Characters), strings.Join(ids, ", "),
					removal.Records, removal.HistoryEntries, removal.Members, removal.BlobMembers,
				), nil
			})
		},
	}
}
