package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/hierarchy"
	"trak/internal/models"
)

var jiraIssueTypes = map[string]string{
	string(models.TypeEpic):    "Epic",
	string(models.TypeStory):   "Story",
	string(models.TypeTask):    "Task",
	string(models.TypeSubtask): "Sub-task",
}

func newJiraCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Work with the linked Jira project",
	}

	cmd.AddCommand(
		newJiraCreateCmd(cfg, jsonOutput),
		newJiraImportCmd(cfg, jsonOutput),
		newJiraCommentCmd(cfg, jsonOutput),
		newJiraStatusCmd(cfg, jsonOutput),
	)
	return cmd
}

func newJiraCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "create <project-id> <item-id>",
		Short: "Create a Jira issue from a work item and link it",
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
				if item.Jira != nil && item.Jira.IssueKey != "" {
					return fmt.Errorf("item %d is already linked to %s", itemID, item.Jira.IssueKey)
				}

				ref, err := client.JiraCreateIssue(cmd.Context(), api.JiraCreateIssueRequest{
					Summary:   item.Name,
					IssueType: jiraIssueTypes[item.Type],
					Priority:  item.Priority,
					DueDate:   item.EndDate,
				})
				if err != nil {
					return err
				}

				item.Jira = &models.JiraLink{
					IssueKey:   ref.Key,
					IssueID:    ref.ID,
					IssueURL:   ref.URL,
					IssueType:  jiraIssueTypes[item.Type],
					LastSynced: time.Now().UTC(),
					SyncStatus: "created",
				}

				if *jsonOutput {
					return writeJSON(item)
				}
				return writePlain("linked #%d to %s\n", itemID, ref.Key)
			})
		},
	}
}

func newJiraImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <project-id>",
		Short: "Import the Jira project's issues as work items",
		Long: "Each issue becomes a new root item with a Jira link. Like file\n" +
			"import, this is additive: re-running it duplicates items.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				drafts, err := client.JiraImportIssues(cmd.Context())
				if err != nil {
					return err
				}
				if len(drafts) == 0 {
					return writePlain("no issues to import\n")
				}

				ids, err := hierarchy.ImportBatch(project, drafts)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]any{"imported": len(ids), "ids": ids})
				}
				return writePlain("imported %d issue(s)\n", len(ids))
			})
		},
	}
}

func newJiraCommentCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "comment <project-id> <item-id> <text>",
		Short: "Post a comment to an item's linked Jira issue",
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
			text := args[2]

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				item := hierarchy.FindItem(project.Items, itemID)
				if item == nil {
					return fmt.Errorf("item %d not found in project %d", itemID, projectID)
				}
				if item.Jira == nil || item.Jira.IssueKey == "" {
					return fmt.Errorf("item %d has no linked Jira issue", itemID)
				}

				if err := client.JiraComment(cmd.Context(), api.JiraCommentRequest{
					IssueKey: item.Jira.IssueKey,
					Body:     text,
				}); err != nil {
					return err
				}

				comment := models.NewComment(text, author)
				comment.PostedToJira = true
				item.Comments = append(item.Comments, comment)

				if *jsonOutput {
					return writeJSON(comment)
				}
				return writePlain("commented on %s\n", item.Jira.IssueKey)
			})
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "comment author")
	return cmd
}

func newJiraStatusCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show Jira links for a project's items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withClient(cfg, func(client *api.Client) error {
				project, err := client.GetProject(cmd.Context(), projectID)
				if err != nil {
					return err
				}

				linked := make([]models.WorkItem, 0)
				for _, item := range project.Items {
					if item.Jira != nil && item.Jira.IssueKey != "" {
						linked = append(linked, item)
					}
				}

				if *jsonOutput {
					return writeJSON(linked)
				}
				if len(linked) == 0 {
					return writePlain("no items linked to Jira\n")
				}
				for _, item := range linked {
					if err := writePlain("#%-5d %-30s %-12s %s (%s)\n",
						item.ID, item.Name, item.Jira.IssueKey, item.Jira.SyncStatus,
					item.Jira.LastSynced.Format(time.RFC3339)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
