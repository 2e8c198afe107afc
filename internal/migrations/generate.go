package migrations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fullstack-starter/internal/schema"
)

const snapshotFormatVersion = 1

// Plan describes the migration that generation would write. A plan with no
// statements means the declared schema already matches the journal.
type Plan struct {
	Idx            int
	Tag            string
	Statements     []string
	DownStatements []string

	snapshot *schema.Snapshot
}

func (p *Plan) HasChanges() bool {
	return len(p.Statements) > 0
}

func (p *Plan) UpFile() string {
	return JournalEntry{Idx: p.Idx, Tag: p.Tag}.UpFile()
}

func (p *Plan) DownFile() string {
	return JournalEntry{Idx: p.Idx, Tag: p.Tag}.DownFile()
}

func (p *Plan) SnapshotFile() string {
	return JournalEntry{Idx: p.Idx, Tag: p.Tag}.SnapshotFile()
}

// PlanMigration diffs the declared schema against the last committed
// snapshot in dir. It is the single code path shared by Generate and the
// drift check: planning against an unchanged schema yields an empty plan.
func PlanMigration(dir string, curr *schema.Snapshot, tag string) (*Plan, error) {
	journal, err := LoadJournal(dir)
	if err != nil {
		return nil, err
	}

	prev := &schema.Snapshot{Version: snapshotFormatVersion, Dialect: curr.Dialect}
	idx := 1
	if last := journal.Last(); last != nil {
		prev, err = loadSnapshot(dir, last)
		if err != nil {
			return nil, err
		}
		idx = last.Idx + 1
	}

	plan := &Plan{Idx: idx, snapshot: curr}

	if prev.Hash() == curr.Hash() {
		return plan, nil
	}

	cs, err := diffSnapshots(prev, curr)
	if err != nil {
		return nil, err
	}
	if cs.empty() {
		return plan, nil
	}

	if tag == "" {
		tag = curr.Hash()[:8]
	}
	plan.Tag = sanitizeTag(tag)
	plan.Statements = cs.up
	plan.DownStatements = cs.down
	return plan, nil
}

// Generate writes the planned migration pair, its snapshot, and the journal
// entry. Running it against an unchanged schema writes nothing.
func Generate(dir string, curr *schema.Snapshot, tag string) (*Plan, error) {
	plan, err := PlanMigration(dir, curr, tag)
	if err != nil {
		return nil, err
	}
	if !plan.HasChanges() {
		return plan, nil
	}

	upPath := filepath.Join(dir, plan.UpFile())
	if err := os.WriteFile(upPath, []byte(joinStatements(plan.Statements)), 0644); err != nil {
		return nil, fmt.Errorf("write migration: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, plan.DownFile()), []byte(joinStatements(plan.DownStatements)), 0644); err != nil {
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, metaDirName), 0755); err != nil {
		return nil, fmt.Errorf("create meta directory: %w", err)
	}
	snapData, err := json.MarshalIndent(plan.snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, plan.SnapshotFile()), append(snapData, '\n'), 0644); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	hash, err := fileHash(upPath)
	if err != nil {
		return nil, fmt.Errorf("hash migration: %w", err)
	}

	journal, err := LoadJournal(dir)
	if err != nil {
		return nil, err
	}
	journal.Entries = append(journal.Entries, JournalEntry{
		Idx:  plan.Idx,
		Tag:  plan.Tag,
		Hash: hash,
		When: time.Now().UnixMilli(),
	})
	if err := journal.Save(dir); err != nil {
		return nil, err
	}

	return plan, nil
}

func joinStatements(stmts []string) string {
	return strings.Join(stmts, "\n\n") + "\n"
}

var tagPattern = regexp.MustCompile(`[^a-z0-9_]+`)

func sanitizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = tagPattern.ReplaceAllString(tag, "_")
	tag = strings.Trim(tag, "_")
	if tag == "" {
		tag = "migration"
	}
	return tag
}
