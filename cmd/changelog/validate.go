package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// Problem is a single lint finding. Line is zero for file-level findings.
type Problem struct {
	Line    int
	Message string
}

// LintReport collects the problems found in one changelog file.
type LintReport struct {
	Problems []Problem
}

func (r *LintReport) addf(line int, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *LintReport) Clean() bool {
	return len(r.Problems) == 0
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the changelog against the Keep a Changelog format",
	Long: `Check that a changelog file follows the Keep a Changelog format.

Findings include:
- missing title (# Changelog)
- missing [Unreleased] section
- release headings not of the form ## [X.Y.Z] - YYYY-MM-DD
- change type headings outside Added, Changed, Deprecated, Removed, Fixed, Security
- releases without a link reference definition`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		report := Lint(source)
		if report.Clean() {
			fmt.Println("✓ Changelog is valid")
			return nil
		}

		fmt.Printf("Found %d issue(s):\n\n", len(report.Problems))
		for _, p := range report.Problems {
			if p.Line > 0 {
				fmt.Printf("  Line %d: %s\n", p.Line, p.Message)
			} else {
				fmt.Printf("  %s\n", p.Message)
			}
		}
		os.Exit(1)
		return nil
	},
}

var (
	isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	semver  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

	changeTypes = map[string]bool{
		"Added":      true,
		"Changed":    true,
		"Deprecated": true,
		"Removed":    true,
		"Fixed":      true,
		"Security":   true,
	}
)

// Lint checks changelog source against the Keep a Changelog format.
func Lint(source []byte) *LintReport {
	report := &LintReport{}

	hasTitle := false
	hasUnreleased := false
	versions := make(map[string]bool)

	for i, raw := range strings.Split(string(source), "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "# "):
			hasTitle = true
			if !strings.Contains(strings.ToLower(line), "changelog") {
				report.addf(lineNum, "Title should contain 'Changelog'")
			}

		case strings.HasPrefix(line, "## ["):
			end := strings.Index(line, "]")
			if end <= 4 {
				continue
			}
			version := line[4:end]
			if strings.EqualFold(version, "unreleased") {
				hasUnreleased = true
				continue
			}
			versions[version] = true
			if !semver.MatchString(version) {
				report.addf(lineNum, "Version '%s' should follow semantic versioning (X.Y.Z)", version)
			}
			rest := line[end+1:]
			if !strings.Contains(rest, " - ") {
				report.addf(lineNum, "Version '%s' is missing a release date", version)
				continue
			}
			date := strings.TrimSpace(rest[strings.Index(rest, " - ")+3:])
			if !isoDate.MatchString(date) {
				report.addf(lineNum, "Date '%s' should be in ISO 8601 format (YYYY-MM-DD)", date)
			}

		case strings.HasPrefix(line, "### "):
			changeType := strings.TrimPrefix(line, "### ")
			if !changeTypes[changeType] {
				report.addf(lineNum, "Invalid change type '%s'. Valid types: Added, Changed, Deprecated, Removed, Fixed, Security", changeType)
			}
		}
	}

	if !hasTitle {
		report.addf(0, "Missing changelog title (# Changelog)")
	}
	if !hasUnreleased {
		report.addf(0, "Missing [Unreleased] section")
	}

	if changelog, err := ParseChangelog(source); err == nil {
		for version := range versions {
			if _, ok := changelog.Links[version]; !ok {
				report.addf(0, "Missing link definition for version [%s]", version)
			}
		}
		if hasUnreleased {
			if _, ok := changelog.Links["Unreleased"]; !ok {
				report.addf(0, "Missing link definition for [Unreleased]")
			}
		}
	}

	return report
}

func init() {
	validateCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	rootCmd.AddCommand(validateCmd)
}
