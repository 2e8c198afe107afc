package studio

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/uptrace/bun"
)

// Inspector is the read-only view the studio UI renders. Split out so the
// HTTP layer can be tested without Postgres.
type Inspector interface {
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]ColumnInfo, error)
	Rows(ctx context.Context, table string, limit int) (*RowSet, error)
}

type ColumnInfo struct {
	Name     string `bun:"column_name"`
	Type     string `bun:"data_type"`
	Nullable string `bun:"is_nullable"`
	Default  string `bun:"column_default"`
}

type RowSet struct {
	Columns []string
	Rows    [][]string
}

// PostgresInspector reads live schema and data through information_schema.
type PostgresInspector struct {
	DB *bun.DB
}

func (p *PostgresInspector) Tables(ctx context.Context) ([]string, error) {
	var names []string
	err := p.DB.NewRaw(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name",
	).Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

func (p *PostgresInspector) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	var cols []ColumnInfo
	err := p.DB.NewRaw(
		"SELECT column_name, data_type, is_nullable, COALESCE(column_default, '') AS column_default FROM information_schema.columns WHERE table_schema = 'public' AND table_name = ? ORDER BY ordinal_position",
		table,
	).Scan(ctx, &cols)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return cols, nil
}

func (p *PostgresInspector) Rows(ctx context.Context, table string, limit int) (*RowSet, error) {
	// The table name was checked against Tables by the handler; quoting is
	// belt and braces.
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", pq.QuoteIdentifier(table), limit)
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &RowSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		scan := make([]any, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		set.Rows = append(set.Rows, row)
	}
	return set, rows.Err()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
