package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
)

func newExportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full project list as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				projects, err := client.ListProjects(cmd.Context())
				if err != nil {
					return err
				}

				w := os.Stdout
				if outputPath != "" {
					f, err := os.Create(outputPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}

				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(projects)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}
