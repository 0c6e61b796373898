package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. `serve` runs when no subcommand is given.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "farm-market-session",
		Short:         "Session daemon for the farm marketplace frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Load .env file with proper error handling
			if err := godotenv.Load(); err != nil {
				log.Printf("warning: failed to load .env file: %v (using system environment variables)", err)
			}
		},
		RunE: runServe,
	}

	root.AddCommand(newServeCmd(), newDecodeCmd(), newIssueCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
