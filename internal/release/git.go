package release

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	fieldSep  = "\x1f"
	commitSep = "\x1e"
)

// LastTag returns the most recent v-prefixed tag reachable from HEAD, or ""
// when the repository has never been tagged.
func LastTag() (string, error) {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0", "--match", "v*").Output()
	if err != nil {
		// git exits non-zero when no tag exists; that is a first release,
		// not a failure.
		if _, ok := err.(*exec.ExitError); ok {
			return "", nil
		}
		return "", fmt.Errorf("git describe: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommitsSince reads the commit log after tag (or the whole history when tag
// is empty), newest first.
func CommitsSince(tag string) ([]Commit, error) {
	args := []string{"log", "--no-merges", "--format=%H" + fieldSep + "%s" + fieldSep + "%b" + commitSep}
	if tag != "" {
		args = append(args, tag+"..HEAD")
	}

	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}

	var commits []Commit
	for _, raw := range strings.Split(string(out), commitSep) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fields := strings.SplitN(raw, fieldSep, 3)
		if len(fields) < 2 {
			continue
		}
		c := Commit{Hash: fields[0], Subject: fields[1]}
		if len(fields) == 3 {
			c.Body = strings.TrimSpace(fields[2])
		}
		commits = append(commits, c)
	}
	return commits, nil
}
