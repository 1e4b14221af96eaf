package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/character"
	"github.com/pixil98/go-prospect/internal/prospect"
)

// NewCleanupCmd creates the cleanup command.
func NewCleanupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup <save>",
		Short: "Remove player state, rocket spawn and rocket recorders no character owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[0], func(cmd *cobra.Command, p *prospect.Prospect) (string, error) {
				removed, err := character.Cleanup(p)
				if err != nil {
					return "", err
				}
				if len(removed) == 0 {
					return "", nil
				}
				return fmt.Sprintf("Removing %d unowned recorder(s).", len(removed)), nil
			})
		},
	}
}
