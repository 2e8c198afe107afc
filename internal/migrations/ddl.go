package migrations

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"fullstack-starter/internal/schema"
)

// DDL rendering is deliberately dialect-fixed to Postgres and deterministic:
// identical snapshots always render byte-identical statements, which drift
// detection relies on.

func createTableSQL(t schema.Table) string {
	var lines []string
	var pkCols []string

	for _, c := range t.Columns {
		lines = append(lines, "\t"+columnDDL(c))
		if c.PrimaryKey {
			pkCols = append(pkCols, pq.QuoteIdentifier(c.Name))
		}
	}
	if len(pkCols) > 0 {
		lines = append(lines, fmt.Sprintf("\tPRIMARY KEY (%s)", strings.Join(pkCols, ", ")))
	}
	for _, c := range t.Columns {
		if c.Unique {
			lines = append(lines, fmt.Sprintf("\tUNIQUE (%s)", pq.QuoteIdentifier(c.Name)))
		}
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", pq.QuoteIdentifier(t.Name), strings.Join(lines, ",\n"))
}

func dropTableSQL(name string) string {
	return fmt.Sprintf("DROP TABLE %s;", pq.QuoteIdentifier(name))
}

func columnDDL(c schema.Column) string {
	parts := []string{pq.QuoteIdentifier(c.Name), c.Type}
	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Default != "" {
		parts = append(parts, "DEFAULT "+c.Default)
	}
	return strings.Join(parts, " ")
}

// addColumnSQL may emit two statements: the column itself and, when the
// column is unique, a named constraint so the inverse is a plain drop.
func addColumnSQL(table string, c schema.Column) []string {
	stmts := []string{fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", pq.QuoteIdentifier(table), columnDDL(c))}
	if c.Unique {
		stmts = append(stmts, addUniqueSQL(table, c.Name))
	}
	return stmts
}

func dropColumnSQL(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", pq.QuoteIdentifier(table), pq.QuoteIdentifier(column))
}

func alterTypeSQL(table, column, typ string) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DATA TYPE %s;",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), typ)
}

func setNotNullSQL(table, column string, notNull bool) string {
	action := "DROP NOT NULL"
	if notNull {
		action = "SET NOT NULL"
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s;",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), action)
}

func setDefaultSQL(table, column, def string) string {
	action := "DROP DEFAULT"
	if def != "" {
		action = "SET DEFAULT " + def
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s;",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(column), action)
}

func uniqueConstraintName(table, column string) string {
	return fmt.Sprintf("%s_%s_key", table, column)
}

func addUniqueSQL(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s);",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(uniqueConstraintName(table, column)), pq.QuoteIdentifier(column))
}

func dropUniqueSQL(table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;",
		pq.QuoteIdentifier(table), pq.QuoteIdentifier(uniqueConstraintName(table, column)))
}
