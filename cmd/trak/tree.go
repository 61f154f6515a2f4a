package main

import (
	"os"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/format"
)

func newTreeCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Show a project's item hierarchy with progress rollups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				project, err := client.GetProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project.Items)
				}
				format.WriteTree(os.Stdout, project.Items)
				return nil
			})
		},
	}
}

func newStatsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <project-id>",
		Short: "Show project aggregates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetStats(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				format.WriteStats(os.Stdout, resp.Stats)
				return nil
			})
		},
	}
}
