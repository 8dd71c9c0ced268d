package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSteer/internal/app"
	"github.com/Rorical/RoriSteer/internal/apperr"
	"github.com/Rorical/RoriSteer/internal/config"
	"github.com/Rorical/RoriSteer/internal/logger"
)

var searchTimeout time.Duration

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the feature catalog once and print the matches",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logPath, err := config.LogPath()
		if err != nil {
			log.Fatalf("Failed to resolve log path: %v", err)
		}
		zl, err := logger.New(logPath, debug)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer func() { _ = zl.Sync() }()

		ctx, cancel := context.WithTimeout(cmd.Context(), searchTimeout)
		defer cancel()

		results, err := app.NewCatalogClient(cfg, zl).Search(ctx, strings.Join(args, " "))
		if err != nil {
			log.Fatal(apperr.Describe(err))
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "no matches")
			return
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-16s  %s\n", r.Key().String(), r.Description)
		}
	},
}

func init() {
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.AddCommand(searchCmd)
}
