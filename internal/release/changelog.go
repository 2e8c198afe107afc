package release

import (
	"fmt"
	"strings"
	"time"
)

// Changelog renders the release section for version from the given commits.
// Only commits that influence the release appear; breaking changes lead.
func Changelog(version string, date time.Time, commits []Commit) string {
	var breaking, features, fixes []string

	for _, c := range commits {
		conv, ok := Parse(c)
		if !ok {
			continue
		}
		line := changelogLine(conv, c)
		switch {
		case conv.Breaking:
			breaking = append(breaking, line)
		case conv.Type == "feat":
			features = append(features, line)
		case conv.Type == "fix" || conv.Type == "perf":
			fixes = append(fixes, line)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s)\n", version, date.Format("2006-01-02"))
	writeSection(&b, "Breaking Changes", breaking)
	writeSection(&b, "Features", features)
	writeSection(&b, "Bug Fixes", fixes)
	return b.String()
}

func changelogLine(conv Conventional, c Commit) string {
	short := c.Hash
	if len(short) > 7 {
		short = short[:7]
	}
	if conv.Scope != "" {
		return fmt.Sprintf("- **%s:** %s (%s)", conv.Scope, conv.Description, short)
	}
	return fmt.Sprintf("- %s (%s)", conv.Description, short)
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
}
