package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-prospect/internal"
	"github.com/pixil98/go-prospect/internal/prospect"
	"github.com/pixil98/go-prospect/internal/storage"
)

// editFunc changes a loaded prospect in memory and describes the change.
// An empty description means there was nothing to do.
type editFunc func(cmd *cobra.Command, p *prospect.Prospect) (string, error)

// edit loads the save at path, applies fn and, once confirmed, backs the
// file up and writes the result. The file is untouched on any failure
// before the final write.
func (a *app) edit(cmd *cobra.Command, path string, fn editFunc) error {
	p, err := prospect.Load(path)
	if err != nil {
		return err
	}

	summary, err := fn(cmd, p)
	if err != nil {
		return err
	}
	if summary == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	if !a.cfg.AssumeYes {
		ok, err := internal.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Save changes to %s?", path))
		if err != nil {
			return fmt.Errorf("confirming: %w", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing written.")
			return nil
		}
	}

	if a.cfg.Backup {
		backup, err := storage.Backup(path, a.cfg.BackupDir)
		if err != nil {
			return err
		}
		slog.Info("backed up prospect", "path", path, "backup", backup)
	}

	return p.Save(path)
}
