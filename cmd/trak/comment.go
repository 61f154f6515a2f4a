package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/hierarchy"
	"trak/internal/models"
)

func newCommentCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		author   string
		toJira   bool
		listOnly bool
	)

	cmd := &cobra.Command{
		Use:   "comment <project-id> <item-id> [text]",
		Short: "Comment on a work item, optionally mirroring to Jira",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}

			if listOnly || len(args) == 2 {
				return withClient(cfg, func(client *api.Client) error {
					project, err := client.GetProject(cmd.Context(), projectID)
					if err != nil {
						return err
					}
					item := hierarchy.FindItem(project.Items, itemID)
					if item == nil {
						return fmt.Errorf("item %d not found in project %d", itemID, projectID)
					}
					if *jsonOutput {
						return writeJSON(item.Comments)
					}
					for _, comment := range item.Comments {
						marker := ""
						if comment.PostedToJira {
							marker = " [jira]"
						}
						if err := writePlain("%s %s%s: %s\n", comment.Timestamp, comment.Author, marker, comment.Text); err != nil {
							return err
						}
					}
					return nil
				})
			}

			text := args[2]
			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				item := hierarchy.FindItem(project.Items, itemID)
				if item == nil {
					return fmt.Errorf("item %d not found in project %d", itemID, projectID)
				}

				comment := models.NewComment(text, author)
				if toJira {
					if item.Jira == nil || item.Jira.IssueKey == "" {
						return fmt.Errorf("item %d has no linked Jira issue", itemID)
					}
					if err := client.JiraComment(cmd.Context(), api.JiraCommentRequest{
						IssueKey: item.Jira.IssueKey,
						Body:     text,
					}); err != nil {
						return err
					}
					comment.PostedToJira = true
				}
				item.Comments = append(item.Comments, comment)

				if *jsonOutput {
					return writeJSON(comment)
				}
				return writePlain("commented on #%d\n", itemID)
			})
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "comment author")
	cmd.Flags().BoolVar(&toJira, "jira", false, "also post to the linked Jira issue")
	cmd.Flags().BoolVar(&listOnly, "list", false, "list comments instead of adding one")
	return cmd
}
