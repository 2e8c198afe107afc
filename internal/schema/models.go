package schema

import (
	"time"

	"github.com/uptrace/bun"
)

// Item is the minimal example table: the name is its own identifier.
type Item struct {
	bun.BaseModel `bun:"table:items"`

	Name string `bun:"name,pk"`
}

// User is the starter account record. Email uniqueness is enforced by the
// database, not by application logic.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Email     string    `bun:"email,unique,notnull"`
	Name      string    `bun:"name,nullzero"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Models returns every declared table in generation order. The order is part
// of the migration contract: generated DDL follows it.
func Models() []any {
	return []any{
		(*Item)(nil),
		(*User)(nil),
	}
}
