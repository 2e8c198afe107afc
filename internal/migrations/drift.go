package migrations

import (
	"fmt"
	"strings"

	"fullstack-starter/internal/schema"
)

// DriftError reports that regenerating migrations would produce files not
// present in the working tree. It carries the would-be files as the
// diagnostic; it is never auto-fixed.
type DriftError struct {
	Files      []string
	Statements []string
}

func (e *DriftError) Error() string {
	var b strings.Builder
	b.WriteString("schema drift detected: the declared schema is ahead of the committed migrations\n")
	b.WriteString("regenerating would produce:\n")
	for _, f := range e.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	b.WriteString("pending statements:\n")
	for _, s := range e.Statements {
		fmt.Fprintf(&b, "  %s\n", s)
	}
	b.WriteString("run `migrate generate` and commit the result")
	return b.String()
}

// Check fails when the declared schema has drifted from the committed
// migration history in dir. It shares the generation code path, so a schema
// with no pending changes can never drift, and it writes nothing.
func Check(dir string, curr *schema.Snapshot) error {
	journal, err := LoadJournal(dir)
	if err != nil {
		return err
	}
	if err := journal.Verify(dir); err != nil {
		return err
	}

	plan, err := PlanMigration(dir, curr, "")
	if err != nil {
		return err
	}
	if !plan.HasChanges() {
		return nil
	}

	return &DriftError{
		Files:      []string{plan.UpFile(), plan.DownFile(), plan.SnapshotFile()},
		Statements: plan.Statements,
	}
}
