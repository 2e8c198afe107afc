package schema

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	bunschema "github.com/uptrace/bun/schema"
)

// Column is the normalized description of one column as it would be created
// in Postgres.
type Column struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	NotNull       bool   `json:"notnull,omitempty"`
	Default       string `json:"default,omitempty"`
	PrimaryKey    bool   `json:"pk,omitempty"`
	Unique        bool   `json:"unique,omitempty"`
	AutoIncrement bool   `json:"autoincrement,omitempty"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Snapshot is the normalized shape of the declared schema. It is what gets
// committed next to each generated migration and what drift detection
// compares against.
type Snapshot struct {
	Version int     `json:"version"`
	Dialect string  `json:"dialect"`
	Tables  []Table `json:"tables"`
}

const snapshotVersion = 1

// NewSnapshot builds a snapshot from bun models via the Postgres dialect's
// table metadata. It never touches a database: the bun handle used for
// reflection is wired to a connector that refuses to connect.
func NewSnapshot(models ...any) (*Snapshot, error) {
	db := newReflectDB()
	defer db.Close()

	snap := &Snapshot{
		Version: snapshotVersion,
		Dialect: "postgres",
	}

	for _, model := range models {
		typ := reflect.TypeOf(model)
		if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("schema: model must be a (*Struct)(nil), got %T", model)
		}

		table := db.Table(typ.Elem())
		snap.Tables = append(snap.Tables, tableFromMeta(table))
	}

	return snap, nil
}

func tableFromMeta(meta *bunschema.Table) Table {
	t := Table{Name: meta.Name}
	for _, f := range meta.Fields {
		t.Columns = append(t.Columns, Column{
			Name:          f.Name,
			Type:          columnType(f),
			NotNull:       f.NotNull || f.IsPK,
			Default:       strings.ToLower(f.SQLDefault),
			PrimaryKey:    f.IsPK,
			Unique:        f.Tag.HasOption("unique"),
			AutoIncrement: f.AutoIncrement || f.Identity,
		})
	}
	return t
}

// columnType normalizes bun's discovered SQL type, folding auto-incrementing
// integers into their serial forms so the snapshot matches the DDL we emit.
func columnType(f *bunschema.Field) string {
	typ := strings.ToLower(f.CreateTableSQLType)
	if f.AutoIncrement || f.Identity {
		switch typ {
		case "bigint":
			return "bigserial"
		case "integer", "int":
			return "serial"
		case "smallint":
			return "smallserial"
		}
	}
	return typ
}

// Hash returns the hex SHA-256 of the canonical JSON encoding. Identical
// declared schemas hash identically, which is what makes regenerate-and-diff
// drift detection sound.
func (s *Snapshot) Hash() string {
	data, _ := json.Marshal(s)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Table returns the named table, or nil.
func (s *Snapshot) Table(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// newReflectDB returns a bun handle that is only good for table metadata.
var errNotConnected = errors.New("schema: metadata handle is not connected to a database")

func newReflectDB() *bun.DB {
	sqldb := sql.OpenDB(noConnector{})
	return bun.NewDB(sqldb, pgdialect.New())
}

type noConnector struct{}

func (noConnector) Connect(context.Context) (driver.Conn, error) { return nil, errNotConnected }
func (noConnector) Driver() driver.Driver                        { return noDriver{} }

type noDriver struct{}

func (noDriver) Open(string) (driver.Conn, error) { return nil, errNotConnected }
