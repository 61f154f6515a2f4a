package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/format"
	"trak/internal/sync"
)

func newSyncCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		once     bool
		interval int
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Poll the server and mirror the project list",
		Long: "Sync replaces the local snapshot with the remote read on every\n" +
			"poll. There is no merge: the last fetch wins, and an edit made\n" +
			"between polls can be overwritten by a stale read.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// One-shot polls always work; the continuous loop is opt-in.
			if !once && !cfg.Sync.Enabled {
				return fmt.Errorf("continuous sync is disabled; enable it with `trak config set sync.enabled true` or poll once with --once")
			}
			if interval <= 0 {
				interval = cfg.Sync.IntervalSeconds
			}

			return withClient(cfg, func(client *api.Client) error {
				store := sync.NewStore()
				poller := sync.NewPoller(client, store, time.Duration(interval)*time.Second,
					slog.Default().With("component", "poller"))

				if once {
					if err := poller.Poll(cmd.Context()); err != nil {
						return err
					}
					projects, fetchedAt := store.Load()
					if *jsonOutput {
						return writeJSON(projects)
					}
					if err := writePlain("fetched %d project(s) at %s\n", len(projects), fetchedAt.Format(time.RFC3339)); err != nil {
						return err
					}
					for _, project := range projects {
						if err := writePlain("%s\n", format.ProjectLine(project)); err != nil {
							return err
						}
					}
					return nil
				}

				updates := store.Subscribe()
				go poller.Run(cmd.Context())

				for {
					select {
					case <-cmd.Context().Done():
						return nil
					case <-updates:
						projects, fetchedAt := store.Load()
						if err := writePlain("%s: %d project(s)\n", fetchedAt.Format(time.RFC3339), len(projects)); err != nil {
							return err
						}
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "poll once and exit")
	cmd.Flags().IntVar(&interval, "interval", 0, "poll interval in seconds (default from config)")
	return cmd
}
