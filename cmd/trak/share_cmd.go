package main

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/format"
	"trak/internal/share"
)

func newShareCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Exchange project snapshots as tokens",
	}

	cmd.AddCommand(
		newShareEncodeCmd(cfg),
		newShareDecodeCmd(jsonOutput),
		newShareApplyCmd(cfg),
	)
	return cmd
}

func newShareEncodeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Encode the current project list as a share token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				projects, err := client.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				token, err := share.Encode(projects)
				if err != nil {
					return err
				}
				return writePlain("%s\n", token)
			})
		},
	}
}

func newShareDecodeCmd(jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Preview the projects inside a share token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := share.Decode(args[0])
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
		},
	}
}

func newShareApplyCmd(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply <token>",
		Short: "Replace the whole project list with a share token's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := share.Decode(args[0])
			if err != nil {
				return err
			}

			if !yes {
				if err := writePlain("replace ALL local projects with %d shared project(s)? [y/N] ", len(projects)); err != nil {
					return err
				}
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					return errors.New("aborted")
				}
			}

			return withClient(cfg, func(client *api.Client) error {
				if err := client.ReplaceAll(cmd.Context(), projects); err != nil {
					return err
				}
				return writePlain("applied %d project(s)\n", len(projects))
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
