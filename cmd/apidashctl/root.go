package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apidashctl",
	Short: "apidashctl manages the apidash server",
	Long: `apidashctl manages the apidash API dashboard server.

It runs the server, applies database migrations, mints development tokens,
and inspects configuration.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
