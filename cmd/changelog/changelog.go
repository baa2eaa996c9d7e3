package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Release is a single versioned section of the changelog.
type Release struct {
	Version string
	Date    string
	Notes   string
}

// Changelog is the parsed document: its releases in file order plus the
// link reference definitions collected at the bottom of the file.
type Changelog struct {
	Releases []Release
	Links    map[string]string
}

// Release returns the release matching version, tolerating a leading "v".
// Returns nil when the version has no entry.
func (c *Changelog) Release(version string) *Release {
	want := strings.TrimPrefix(version, "v")
	for i := range c.Releases {
		if strings.TrimPrefix(c.Releases[i].Version, "v") == want {
			return &c.Releases[i]
		}
	}
	return nil
}

// span marks where a release heading sits in the source so the raw note
// text between consecutive headings can be sliced out.
type span struct {
	version   string
	date      string
	start     int
	bodyStart int
}

// ParseChangelog parses Keep a Changelog formatted markdown. Releases are
// the level-2 headings; everything up to the next level-2 heading is that
// release's notes.
func ParseChangelog(source []byte) (*Changelog, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	changelog := &Changelog{Links: make(map[string]string)}
	for _, ref := range ctx.References() {
		changelog.Links[string(ref.Label())] = string(ref.Destination())
	}

	var spans []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := splitReleaseHeading(headingText(heading, source))
		s := span{version: version, date: date}
		if lines := heading.Lines(); lines.Len() > 0 {
			s.start = lines.At(0).Start
			s.bodyStart = lines.At(lines.Len() - 1).Stop
		}
		spans = append(spans, s)
		return ast.WalkContinue, nil
	})

	for i, s := range spans {
		end := len(source)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		notes := ""
		if s.bodyStart < end {
			notes = strings.TrimSpace(string(source[s.bodyStart:end]))
		}
		changelog.Releases = append(changelog.Releases, Release{
			Version: s.version,
			Date:    s.date,
			Notes:   notes,
		})
	}

	return changelog, nil
}

// headingText flattens a heading node to plain text, unwrapping any link
// (the "[1.0.0] - 2024-01-15" form renders the version as a link).
func headingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
		case *ast.Link:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					buf.Write(t.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// splitReleaseHeading pulls the version and optional date out of a release
// heading such as "[1.0.0] - 2024-01-15" or "1.0.0 - 2024-01-15".
func splitReleaseHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)
	heading = strings.TrimPrefix(heading, "[")

	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		if strings.HasPrefix(rest, "- ") {
			date = strings.TrimSpace(rest[2:])
		}
		return version, date
	}

	if idx := strings.Index(heading, " - "); idx != -1 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+3:])
	}
	return heading, ""
}
