package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"trak/internal/api"
	"trak/internal/config"
)

func newHolidaysCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List public holidays for timeline planning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = parsed
			}

			return withClient(cfg, func(client *api.Client) error {
				holidays, err := client.GetHolidays(cmd.Context(), year)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(holidays)
				}
				for _, h := range holidays {
					if err := writePlain("%s  %s\n", h.Date, h.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
