package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search query...",
		Short: "find stored documents by analyzed terms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")
			if dbPath == "" {
				return errors.New("--db is required")
			}

			engine, cleanup, err := buildEngine(cmd.Context(), configPath, dbPath)
			if err != nil {
				return err
			}
			defer cleanup()

			docs, err := engine.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range docs {
				published := "-"
				if !d.PublishedAt.IsZero() {
					published = d.PublishedAt.Format(time.DateOnly)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", d.ID, published, d.Name, d.Title)
			}
			return nil
		},
	}
	cmd.Flags().String("db", "", "SQLite database to search")
	cmd.Flags().Int("limit", 20, "maximum number of documents")
	return cmd
}
