package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
	"trak/internal/hierarchy"
	"trak/internal/importer"
	"trak/internal/models"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		inputPath  string
		fileFormat string
	)

	cmd := &cobra.Command{
		Use:   "import <project-id>",
		Short: "Import work items from a CSV or markdown file",
		Long: "Import appends every row as a new root item. It never deduplicates:\n" +
			"importing the same file twice doubles the items.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if inputPath == "" {
				return errors.New("--input is required")
			}

			drafts, err := parseImportFile(inputPath, fileFormat)
			if err != nil {
				return err
			}

			return withProject(cfg, cmd, projectID, func(client *api.Client, project *models.Project) error {
				ids, err := hierarchy.ImportBatch(project, drafts)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]any{"imported": len(ids), "ids": ids})
				}
				return writePlain("imported %d item(s)\n", len(ids))
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file (.csv or .md)")
	cmd.Flags().StringVar(&fileFormat, "format", "", "input format (csv, markdown); default from file extension")
	return cmd
}

func parseImportFile(path, fileFormat string) ([]models.WorkItem, error) {
	if fileFormat == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			fileFormat = "csv"
		case ".md", ".markdown":
			fileFormat = "markdown"
		default:
			return nil, fmt.Errorf("cannot infer format from %q; pass --format", path)
		}
	}

	switch fileFormat {
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return importer.ParseCSV(f)
	case "markdown":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return importer.ParseMarkdown(string(raw))
	default:
		return nil, fmt.Errorf("unknown format %q (expected csv or markdown)", fileFormat)
	}
}
