package migrations

import (
	"fmt"

	"fullstack-starter/internal/schema"
)

type changeset struct {
	up   []string
	down []string
}

func (c *changeset) empty() bool {
	return len(c.up) == 0
}

// diffSnapshots computes the ordered statements that move a database from
// prev to curr, plus their mechanical inverse. Column-level changes cover
// add, drop, type, nullability, default, and unique; a primary-key change has
// no safe mechanical translation and is rejected.
func diffSnapshots(prev, curr *schema.Snapshot) (*changeset, error) {
	cs := &changeset{}

	// New and altered tables, in declaration order.
	for _, table := range curr.Tables {
		old := prev.Table(table.Name)
		if old == nil {
			cs.up = append(cs.up, createTableSQL(table))
			cs.down = append([]string{dropTableSQL(table.Name)}, cs.down...)
			continue
		}
		if err := diffTable(cs, *old, table); err != nil {
			return nil, err
		}
	}

	// Dropped tables.
	for _, table := range prev.Tables {
		if curr.Table(table.Name) == nil {
			cs.up = append(cs.up, dropTableSQL(table.Name))
			cs.down = append(cs.down, createTableSQL(table))
		}
	}

	return cs, nil
}

func diffTable(cs *changeset, old, curr schema.Table) error {
	for _, col := range curr.Columns {
		prevCol := old.Column(col.Name)
		if prevCol == nil {
			cs.up = append(cs.up, addColumnSQL(curr.Name, col)...)
			cs.down = append(cs.down, dropColumnSQL(curr.Name, col.Name))
			continue
		}
		if err := diffColumn(cs, curr.Name, *prevCol, col); err != nil {
			return err
		}
	}

	for _, col := range old.Columns {
		if curr.Column(col.Name) == nil {
			cs.up = append(cs.up, dropColumnSQL(curr.Name, col.Name))
			cs.down = append(cs.down, addColumnSQL(curr.Name, col)...)
		}
	}

	return nil
}

func diffColumn(cs *changeset, table string, old, curr schema.Column) error {
	if old.PrimaryKey != curr.PrimaryKey {
		return fmt.Errorf("migrations: primary key change on %q.%q is not supported, write this migration by hand", table, curr.Name)
	}

	if old.Type != curr.Type {
		cs.up = append(cs.up, alterTypeSQL(table, curr.Name, curr.Type))
		cs.down = append(cs.down, alterTypeSQL(table, curr.Name, old.Type))
	}
	if old.NotNull != curr.NotNull {
		cs.up = append(cs.up, setNotNullSQL(table, curr.Name, curr.NotNull))
		cs.down = append(cs.down, setNotNullSQL(table, curr.Name, old.NotNull))
	}
	if old.Default != curr.Default {
		cs.up = append(cs.up, setDefaultSQL(table, curr.Name, curr.Default))
		cs.down = append(cs.down, setDefaultSQL(table, curr.Name, old.Default))
	}
	if old.Unique != curr.Unique {
		if curr.Unique {
			cs.up = append(cs.up, addUniqueSQL(table, curr.Name))
			cs.down = append(cs.down, dropUniqueSQL(table, curr.Name))
		} else {
			cs.up = append(cs.up, dropUniqueSQL(table, curr.Name))
			cs.down = append(cs.down, addUniqueSQL(table, curr.Name))
		}
	}

	return nil
}
