package main

import (
	"fmt"
	"os"
	"time"

	"fullstack-starter/internal/release"
)

const usage = `usage: release <command>

commands:
  next       print the next semantic version implied by commits since the
             last tag; prints nothing when no release is warranted
  changelog  print a changelog for the commits since the last tag
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "next":
		err = runNext()
	case "changelog":
		err = runChangelog()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "release:", err)
		os.Exit(1)
	}
}

func runNext() error {
	tag, err := release.LastTag()
	if err != nil {
		return err
	}
	commits, err := release.CommitsSince(tag)
	if err != nil {
		return err
	}

	next, err := release.NextVersion(tag, release.Highest(commits))
	if err != nil {
		return err
	}
	if next != "" {
		fmt.Println(next)
	}
	return nil
}

func runChangelog() error {
	tag, err := release.LastTag()
	if err != nil {
		return err
	}
	commits, err := release.CommitsSince(tag)
	if err != nil {
		return err
	}

	next, err := release.NextVersion(tag, release.Highest(commits))
	if err != nil {
		return err
	}
	if next == "" {
		return nil
	}

	fmt.Print(release.Changelog(next, time.Now(), commits))
	return nil
}
