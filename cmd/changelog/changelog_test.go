package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

### Added
- Campaign approval workflow

## [0.2.0] - 2026-03-10

### Added
- Endpoint health probes
- API key revocation

### Fixed
- Rate aggregation on empty dashboards

## [0.1.0] - 2026-01-20

### Added
- First public release

[Unreleased]: https://github.com/apidashio/apidash/compare/v0.2.0...HEAD
[0.2.0]: https://github.com/apidashio/apidash/compare/v0.1.0...v0.2.0
[0.1.0]: https://github.com/apidashio/apidash/releases/tag/v0.1.0
`

func TestParseChangelog(t *testing.T) {
	changelog, err := ParseChangelog([]byte(sampleChangelog))
	require.NoError(t, err)
	require.Len(t, changelog.Releases, 3)

	assert.Equal(t, "Unreleased", changelog.Releases[0].Version)
	assert.Empty(t, changelog.Releases[0].Date)

	assert.Equal(t, "0.2.0", changelog.Releases[1].Version)
	assert.Equal(t, "2026-03-10", changelog.Releases[1].Date)
	assert.Contains(t, changelog.Releases[1].Notes, "Endpoint health probes")

	assert.Len(t, changelog.Links, 3)
	assert.Equal(t, "https://github.com/apidashio/apidash/compare/v0.1.0...v0.2.0", changelog.Links["0.2.0"])
}

func TestReleaseLookup(t *testing.T) {
	changelog, err := ParseChangelog([]byte(sampleChangelog))
	require.NoError(t, err)

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"exact version", "0.2.0", "0.2.0"},
		{"with v prefix", "v0.2.0", "0.2.0"},
		{"older version", "0.1.0", "0.1.0"},
		{"unreleased", "Unreleased", "Unreleased"},
		{"non-existent", "2.0.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := changelog.Release(tt.version)
			if tt.expected == "" {
				assert.Nil(t, release)
			} else {
				require.NotNil(t, release)
				assert.Equal(t, tt.expected, release.Version)
			}
		})
	}
}

func TestLintValid(t *testing.T) {
	report := Lint([]byte(sampleChangelog))
	assert.True(t, report.Clean(), "Expected clean changelog, got: %v", report.Problems)
}

func TestLintMissingTitle(t *testing.T) {
	changelog := `## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something

[Unreleased]: https://example.com
[1.0.0]: https://example.com
`
	report := Lint([]byte(changelog))
	assert.False(t, report.Clean())
	assert.True(t, containsProblem(report, "Missing changelog title (# Changelog)"))
}

func TestLintMissingUnreleased(t *testing.T) {
	changelog := `# Changelog

## [1.0.0] - 2026-01-15

### Added
- Something

[1.0.0]: https://example.com
`
	report := Lint([]byte(changelog))
	assert.False(t, report.Clean())
	assert.True(t, containsProblem(report, "Missing [Unreleased] section"))
}

func TestLintBadDate(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 15-01-2026

### Added
- Something

[Unreleased]: https://example.com
[1.0.0]: https://example.com
`
	report := Lint([]byte(changelog))
	assert.False(t, report.Clean())
	assert.True(t, containsProblem(report, "ISO 8601"))
}

func TestLintBadChangeType(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

### New
- Something

[Unreleased]: https://example.com
`
	report := Lint([]byte(changelog))
	assert.False(t, report.Clean())
	assert.True(t, containsProblem(report, "Invalid change type"))
}

func TestLintMissingLinks(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something
`
	report := Lint([]byte(changelog))
	assert.False(t, report.Clean())
	assert.True(t, containsProblem(report, "Missing link definition for [Unreleased]"))
	assert.True(t, containsProblem(report, "Missing link definition for version [1.0.0]"))
}

func containsProblem(report *LintReport, substr string) bool {
	for _, p := range report.Problems {
		if strings.Contains(p.Message, substr) {
			return true
		}
	}
	return false
}
