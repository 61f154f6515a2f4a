package main

import (
	"os"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/format"
)

func newProjectCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(cfg, jsonOutput),
		newProjectListCmd(cfg, jsonOutput),
		newProjectShowCmd(cfg, jsonOutput),
		newProjectDeleteCmd(cfg),
	)
	return cmd
}

func newProjectCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		description string
		startDate   string
		endDate     string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				project, err := client.CreateProject(cmd.Context(), api.ProjectCreateRequest{
					Name:        args[0],
					Description: description,
					StartDate:   startDate,
					EndDate:     endDate,
					Status:      status,
				})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(project)
				}
				return writePlain("created project #%d %s\n", project.ID, project.Name)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "project status (planning, in-progress, completed)")
	return cmd
}

func newProjectListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				projects, err := client.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(projects)
				}
				for _, project := range projects {
					if err := writePlain("%s\n", format.ProjectLine(project)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newProjectShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its items",
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
					return writeJSON(project)
				}
				format.WriteProject(os.Stdout, project)
				return nil
			})
		},
	}
}

func newProjectDeleteCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteProject(cmd.Context(), id); err != nil {
					return err
				}
				return writePlain("deleted project #%d\n", id)
			})
		},
	}
}
