package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var linkDefLine = regexp.MustCompile(`^\[[^\]]+\]:\s+\S+\s*$`)

// dropLinkDefinitions removes link reference definition lines that fall
// inside the final release's note text.
func dropLinkDefinitions(notes string) string {
	var kept []string
	for _, line := range strings.Split(notes, "\n") {
		if !linkDefLine.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the notes for one release",
	Long:  `Print the changelog notes for a single release, suitable for pasting into release tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		version, _ := cmd.Flags().GetString("version")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		changelog, err := ParseChangelog(source)
		if err != nil {
			return fmt.Errorf("parsing changelog: %w", err)
		}

		release := changelog.Release(version)
		if release == nil {
			return fmt.Errorf("version %s not found in changelog", version)
		}

		if release.Date != "" {
			fmt.Printf("## [%s] - %s\n\n", release.Version, release.Date)
		} else {
			fmt.Printf("## [%s]\n\n", release.Version)
		}
		fmt.Print(dropLinkDefinitions(release.Notes))

		if url, ok := changelog.Links[release.Version]; ok {
			fmt.Printf("\n\n[%s]: %s\n", release.Version, url)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every release in the changelog",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		changelog, err := ParseChangelog(source)
		if err != nil {
			return fmt.Errorf("parsing changelog: %w", err)
		}

		for _, release := range changelog.Releases {
			if release.Date != "" {
				fmt.Printf("%s (%s)\n", release.Version, release.Date)
			} else {
				fmt.Println(release.Version)
			}
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	extractCmd.Flags().StringP("version", "v", "", "Version to extract (with or without 'v' prefix)")
	_ = extractCmd.MarkFlagRequired("version")

	listCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
}
