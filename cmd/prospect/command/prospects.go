package command

import (
	"errors"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal/display"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/storage"
)

// NewProspectsCmd creates the prospects command.
func NewProspectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prospects [dir]",
		Short: "Find prospect saves below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SaveDir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return errors.New("no directory given and save_dir is not configured")
			}

			paths, err := storage.Discover(dir)
			if err != nil {
				return err
			}

			tbl := display.NewTable(cmd.OutOrStdout(), "Path", "Name", "Difficulty", "Members", "Size")
			for _, path := range paths {
				size := "-"
				if info, err := os.Stat(path); err == nil {
					size = humanize.Bytes(uint64(info.Size()))
				}

				p, err := prospect.Load(path)
				if err != nil {
					slog.Debug("skipping file", "path", path, "error", err)
					continue
				}
				tbl.AddRow(path, p.Name(), p.Difficulty(), len(p.Members()), size)
			}
			tbl.Print()
			return nil
		},
	}
}
