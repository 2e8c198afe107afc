package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Bump is the semver component a set of commits asks for.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// Commit is one commit as read from the git log.
type Commit struct {
	Hash    string
	Subject string
	Body    string
}

// Conventional is a parsed conventional-commit subject.
type Conventional struct {
	Type        string
	Scope       string
	Breaking    bool
	Description string
}

var subjectPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?:\s*(.+)$`)

// Parse reads a conventional-commit subject like "feat(api)!: add search".
// Non-conforming subjects are not an error; they just never trigger a
// release.
func Parse(c Commit) (Conventional, bool) {
	m := subjectPattern.FindStringSubmatch(strings.TrimSpace(c.Subject))
	if m == nil {
		return Conventional{}, false
	}

	conv := Conventional{
		Type:        strings.ToLower(m[1]),
		Scope:       m[2],
		Breaking:    m[3] == "!",
		Description: m[4],
	}
	if strings.Contains(c.Body, "BREAKING CHANGE:") || strings.Contains(c.Body, "BREAKING-CHANGE:") {
		conv.Breaking = true
	}
	return conv, true
}

// Classify maps one commit to the bump it asks for: breaking → major,
// feat → minor, fix/perf → patch, anything else → none.
func Classify(c Commit) Bump {
	conv, ok := Parse(c)
	if !ok {
		return BumpNone
	}
	if conv.Breaking {
		return BumpMajor
	}
	switch conv.Type {
	case "feat":
		return BumpMinor
	case "fix", "perf":
		return BumpPatch
	default:
		return BumpNone
	}
}

// Highest returns the single highest-impact bump across the commits. The
// next release reflects it exactly once, no matter how many commits asked
// for lower bumps.
func Highest(commits []Commit) Bump {
	highest := BumpNone
	for _, c := range commits {
		if b := Classify(c); b > highest {
			highest = b
		}
	}
	return highest
}

// NextVersion applies bump to current (a "vX.Y.Z" tag, or empty when the
// repository has never been released).
func NextVersion(current string, bump Bump) (string, error) {
	if bump == BumpNone {
		return "", nil
	}
	if current == "" {
		return "v0.1.0", nil
	}
	if !semver.IsValid(current) {
		return "", fmt.Errorf("current version %q is not valid semver", current)
	}

	parts := strings.SplitN(strings.TrimPrefix(semver.Canonical(current), "v"), ".", 3)
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	patch, _ := strconv.Atoi(parts[2])

	switch bump {
	case BumpMajor:
		major, minor, patch = major+1, 0, 0
	case BumpMinor:
		minor, patch = minor+1, 0
	case BumpPatch:
		patch++
	}

	return fmt.Sprintf("v%d.%d.%d", major, minor, patch), nil
}
