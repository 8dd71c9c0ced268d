package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSteer/internal/app"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "roristeer",
	Short: "Steer a language model with interpretable features",
	Long: `RoriSteer searches a feature catalog, lets you pick features and strengths,
and chats with the same model twice: once plain, once steered.`,
	Run: func(cmd *cobra.Command, args []string) {
		runApp()
	},
}

func runApp() {
	application, err := app.NewApplication(app.Options{Debug: debug})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug level entries to the log file")
	rootCmd.AddCommand(profileCmd)
}
