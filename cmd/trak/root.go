package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trak/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "trak",
		Short: "Trak is a hierarchical project tracker with Jira sync",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newInfoCmd(cfg, &jsonOutput),
		newProjectCmd(cfg, &jsonOutput),
		newAddCmd(cfg, &jsonOutput),
		newUpdateCmd(cfg, &jsonOutput),
		newMoveCmd(cfg, &jsonOutput),
		newRmCmd(cfg),
		newStatusCmd(cfg, &jsonOutput),
		newTreeCmd(cfg, &jsonOutput),
		newStatsCmd(cfg, &jsonOutput),
		newCommentCmd(cfg, &jsonOutput),
		newImportCmd(cfg, &jsonOutput),
		newExportCmd(cfg, &jsonOutput),
		newJiraCmd(cfg, &jsonOutput),
		newShareCmd(cfg, &jsonOutput),
		newSyncCmd(cfg, &jsonOutput),
		newHolidaysCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
		newMigrateCmd(cfg, &jsonOutput),
	)

	return cmd
}
