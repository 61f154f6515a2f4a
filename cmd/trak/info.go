package main

import (
	"sort"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show server and database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				health, err := client.Health(cmd.Context())
				if err != nil {
					return err
				}
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(struct {
						Health api.HealthResponse `json:"health"`
						Info   api.InfoResponse   `json:"info"`
					}{health, resp})
				}

				_ = writePlain("server: %s (%s)\n", health.Status, health.Database)
				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("total_projects: %d\n", resp.TotalProjects)

				statuses := make([]string, 0, len(resp.StatusCounts))
				for status := range resp.StatusCounts {
					statuses = append(statuses, status)
				}
				sort.Strings(statuses)
				for _, status := range statuses {
					_ = writePlain("  %s: %d\n", status, resp.StatusCounts[status])
				}
				return nil
			})
		},
	}
	return cmd
}
