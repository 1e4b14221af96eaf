package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const AppName = "prospect"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

// app carries the resolved configuration from the root command to its
// subcommands.
type app struct {
	cfg Config
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}

func NewRootCmd(version string) *cobra.Command {
	a := &app{cfg: DefaultConfig()}

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Edit prospect save files",
		Long:          "Change prospect settings and remove characters, orphaned recorders and prebuilt structures.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "", "path to a JSON config file")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolP("yes", "y", false, "apply changes without asking")
	cmd.PersistentFlags().Bool("no-backup", false, "do not back up the save before writing it")
	cmd.PersistentFlags().String("backup-dir", "", "directory for backups (default: next to the save)")

	cmd.AddCommand(
		NewInfoCmd(a),
		NewSetCmd(a),
		NewListCmd(a),
		NewRemoveCmd(a),
		NewCleanupCmd(a),
		NewPrebuiltCmd(a),
		NewProspectsCmd(a),
	)

	return cmd
}

// configure resolves the configuration and installs the logger.
func (a *app) configure(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("yes") {
		cfg.AssumeYes, _ = flags.GetBool("yes")
	}
	if flags.Changed("no-backup") {
		noBackup, _ := flags.GetBool("no-backup")
		cfg.Backup = !noBackup
	}
	if flags.Changed("backup-dir") {
		cfg.BackupDir, _ = flags.GetString("backup-dir")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	level, _ := cfg.Level()
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), level))

	a.cfg = cfg
	return nil
}
