package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/format"
	"trak/internal/hierarchy"
	"trak/internal/models"
)

// withProject fetches a project, applies fn, and writes the result back.
// Mutations run client-side against the fetched snapshot; the write is
// last-write-wins per project.
func withProject(cfg *config.Config, cmd *cobra.Command, projectID int64, fn func(client *api.Client, project *models.Project) error) error {
	return withClient(cfg, func(client *api.Client) error {
		project, err := client.GetProject(cmd.Context(), projectID)
		if err != nil {
			return err
		}
		if err := fn(client, &project); err != nil {
			return err
		}
		_, err = client.PutProject(cmd.Context(), project)
		return err
	})
}

func newAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		itemType  string
		parentID  int64
		status    string
		priority  string
		assignee  string
		startDate string
		endDate   string
		estimated float64
		actual    float64
	)

	cmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Add a work item to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			var parent *int64
			if parentID != 0 {
				parent = &parentID
			}

			draft := models.WorkItem{
				Name:           args[1],
				Type:           itemType,
				Status:         status,
				Priority:       priority,
				Assignee:       assignee,
				StartDate:      startDate,
				EndDate:        endDate,
				EstimatedHours: estimated,
				ActualHours:    actual,
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				item, err := hierarchy.AddItem(project, draft, parent)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(item)
				}
				return writePlain("added %s #%d %s\n", item.Type, item.ID, item.Name)
			})
		},
	}

	cmd.Flags().StringVar(&itemType, "type", "epic", "item type (epic, story, task, subtask)")
	cmd.Flags().Int64Var(&parentID, "parent", 0, "parent item id (required for non-epics)")
	cmd.Flags().StringVar(&status, "status", "", "item status (pending, in-progress, review)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&estimated, "estimated", 0, "estimated hours")
	cmd.Flags().Float64Var(&actual, "actual", 0, "actual hours")
	return cmd
}

func newUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		name      string
		priority  string
		assignee  string
		startDate string
		endDate   string
		estimated float64
		actual    float64
	)

	cmd := &cobra.Command{
		Use:   "update <project-id> <item-id>",
		Short: "Update fields of a work item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				item := hierarchy.FindItem(project.Items, itemID)
				if item == nil {
					return fmt.Errorf("item %d not found in project %d", itemID, projectID)
				}

				if cmd.Flags().Changed("name") {
					item.Name = name
				}
				if cmd.Flags().Changed("priority") {
					parsed, err := models.ParsePriority(priority)
					if err != nil {
						return err
					}
					item.Priority = string(parsed)
				}
				if cmd.Flags().Changed("assignee") {
					item.Assignee = assignee
				}
				if cmd.Flags().Changed("start") {
					item.StartDate = startDate
				}
				if cmd.Flags().Changed("end") {
					item.EndDate = endDate
				}
				if cmd.Flags().Changed("estimated") {
					item.EstimatedHours = estimated
				}
				if cmd.Flags().Changed("actual") {
					item.ActualHours = actual
				}

				if *jsonOutput {
					return writeJSON(item)
				}
				return writePlain("%s\n", format.ItemLine(project.Items, *item))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "item name")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&estimated, "estimated", 0, "estimated hours")
	cmd.Flags().Float64Var(&actual, "actual", 0, "actual hours")
	return cmd
}

func newMoveCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var parentID int64

	cmd := &cobra.Command{
		Use:   "move <project-id> <item-id>",
		Short: "Move a work item (and its subtree) under a new parent",
		Long: "Move re-parents an item and carries its whole subtree along,\n" +
			"recomputing levels from the new position. Without --parent the\n" +
			"item becomes a root, which only epics can be.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			var parent *int64
			if parentID != 0 {
				parent = &parentID
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				if err := hierarchy.MoveItem(project, itemID, parent); err != nil {
					return err
				}
				item := hierarchy.FindItem(project.Items, itemID)
				if *jsonOutput {
					return writeJSON(item)
				}
				if item.ParentID == nil {
					return writePlain("moved %s #%d to the root\n", item.Type, item.ID)
				}
				return writePlain("moved %s #%d under #%d\n", item.Type, item.ID, *item.ParentID)
			})
		},
	}

	cmd.Flags().Int64Var(&parentID, "parent", 0, "new parent item id (omit to move to the root)")
	return cmd
}

func newRmCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-id> <item-id>",
		Short: "Remove a work item and its whole subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				before := len(project.Items)
				hierarchy.DeleteItem(project, itemID)
				return writePlain("removed %d item(s)\n", before-len(project.Items))
			})
		},
	}
}

func newStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id> <item-id> <status>",
		Short: "Set a work item's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				if err := hierarchy.UpdateStatus(project, itemID, args[2]); err != nil {
					return err
				}
				item := hierarchy.FindItem(project.Items, itemID)
				if *jsonOutput {
					return writeJSON(item)
				}
				return writePlain("%s\n", format.ItemLine(project.Items, *item))
			})
		},
	}
}
