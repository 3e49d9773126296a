package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "inspiro",
	Short: "Inspiro - quote generation service",
	Long: `Inspiro generates inspirational quotes through a text-generation
provider, deduplicates them per search context, and serves favorites,
delivery schedules and quote emails over HTTP.`,
	RunE: runServe,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
