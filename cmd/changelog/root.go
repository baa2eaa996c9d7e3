package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Keep a Changelog parser and linter",
	Long:  `A tool for parsing and linting the apidash CHANGELOG.md, which follows the Keep a Changelog format.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
