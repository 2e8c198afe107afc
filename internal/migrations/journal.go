package migrations

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fullstack-starter/internal/schema"
)

const (
	metaDirName     = "meta"
	journalFileName = "journal.json"
)

// JournalEntry records one generated migration: its position, its tag, the
// SHA-256 of the up file, and the generation time in Unix milliseconds.
type JournalEntry struct {
	Idx  int    `json:"idx"`
	Tag  string `json:"tag"`
	Hash string `json:"hash"`
	When int64  `json:"when"`
}

// Journal is the committed, append-only record of every generated migration.
// It lives at <dir>/meta/journal.json and is the durable contract between
// the declared schema and the migration files next to it.
type Journal struct {
	Version int            `json:"version"`
	Dialect string         `json:"dialect"`
	Entries []JournalEntry `json:"entries"`
}

func (e JournalEntry) name() string {
	return fmt.Sprintf("%04d_%s", e.Idx, e.Tag)
}

func (e JournalEntry) UpFile() string {
	return e.name() + ".up.sql"
}

func (e JournalEntry) DownFile() string {
	return e.name() + ".down.sql"
}

func (e JournalEntry) SnapshotFile() string {
	return filepath.Join(metaDirName, fmt.Sprintf("%04d_snapshot.json", e.Idx))
}

// LoadJournal reads the journal from dir. A missing journal is an empty one.
func LoadJournal(dir string) (*Journal, error) {
	path := filepath.Join(dir, metaDirName, journalFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Journal{Version: snapshotFormatVersion, Dialect: "postgres"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse journal: %w", err)
	}
	return &j, nil
}

func (j *Journal) Save(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, metaDirName), 0755); err != nil {
		return fmt.Errorf("create meta directory: %w", err)
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}

	path := filepath.Join(dir, metaDirName, journalFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Last returns the most recent entry, or nil for an empty journal.
func (j *Journal) Last() *JournalEntry {
	if len(j.Entries) == 0 {
		return nil
	}
	return &j.Entries[len(j.Entries)-1]
}

// Verify recomputes the hash of every journaled up file. Committed migration
// files are immutable; an edited or missing file is an error.
func (j *Journal) Verify(dir string) error {
	var bad []string
	for _, e := range j.Entries {
		sum, err := fileHash(filepath.Join(dir, e.UpFile()))
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s (missing: %v)", e.UpFile(), err))
			continue
		}
		if sum != e.Hash {
			bad = append(bad, fmt.Sprintf("%s (content no longer matches journal hash)", e.UpFile()))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("journal verification failed, migration files must not be edited after commit:\n  %s",
			strings.Join(bad, "\n  "))
	}
	return nil
}

func loadSnapshot(dir string, e *JournalEntry) (*schema.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, e.SnapshotFile()))
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", e.SnapshotFile(), err)
	}
	var snap schema.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", e.SnapshotFile(), err)
	}
	return &snap, nil
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
