package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meetkeeper",
	Short: "Keep track of the people you meet",
	Long:  "Meetkeeper records contacts and coffee/lunch meetings in a local SQLite database and tells you who you have been neglecting. Single Go binary, local-only.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(meetingsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
