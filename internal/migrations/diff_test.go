package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fullstack-starter/internal/migrations"
	"fullstack-starter/internal/schema"
)

func basePosts() *schema.Snapshot {
	return &schema.Snapshot{
		Version: 1,
		Dialect: "postgres",
		Tables: []schema.Table{{
			Name: "posts",
			Columns: []schema.Column{
				{Name: "id", Type: "bigserial", NotNull: true, PrimaryKey: true, AutoIncrement: true},
				{Name: "title", Type: "varchar", NotNull: true},
				{Name: "views", Type: "integer", NotNull: true, Default: "0"},
			},
		}},
	}
}

// plans a migration from basePosts to curr and returns up statements.
func planFrom(t *testing.T, curr *schema.Snapshot) *migrations.Plan {
	t.Helper()
	dir := t.TempDir()
	_, err := migrations.Generate(dir, basePosts(), "base")
	require.NoError(t, err)

	plan, err := migrations.PlanMigration(dir, curr, "next")
	require.NoError(t, err)
	return plan
}

func TestDiffTypeChange(t *testing.T) {
	curr := basePosts()
	curr.Table("posts").Column("views").Type = "bigint"

	plan := planFrom(t, curr)
	require.True(t, plan.HasChanges())
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "views" SET DATA TYPE bigint;`}, plan.Statements)
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "views" SET DATA TYPE integer;`}, plan.DownStatements)
}

func TestDiffNotNullChange(t *testing.T) {
	curr := basePosts()
	curr.Table("posts").Column("title").NotNull = false

	plan := planFrom(t, curr)
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "title" DROP NOT NULL;`}, plan.Statements)
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "title" SET NOT NULL;`}, plan.DownStatements)
}

func TestDiffDefaultChange(t *testing.T) {
	curr := basePosts()
	curr.Table("posts").Column("views").Default = ""

	plan := planFrom(t, curr)
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "views" DROP DEFAULT;`}, plan.Statements)
	assert.Equal(t, []string{`ALTER TABLE "posts" ALTER COLUMN "views" SET DEFAULT 0;`}, plan.DownStatements)
}

func TestDiffUniqueAdded(t *testing.T) {
	curr := basePosts()
	curr.Table("posts").Column("title").Unique = true

	plan := planFrom(t, curr)
	assert.Equal(t, []string{`ALTER TABLE "posts" ADD CONSTRAINT "posts_title_key" UNIQUE ("title");`}, plan.Statements)
	assert.Equal(t, []string{`ALTER TABLE "posts" DROP CONSTRAINT "posts_title_key";`}, plan.DownStatements)
}

func TestDiffDroppedColumn(t *testing.T) {
	curr := basePosts()
	posts := curr.Table("posts")
	posts.Columns = posts.Columns[:2] // drop views

	plan := planFrom(t, curr)
	assert.Equal(t, []string{`ALTER TABLE "posts" DROP COLUMN "views";`}, plan.Statements)
	assert.Equal(t, []string{`ALTER TABLE "posts" ADD COLUMN "views" integer NOT NULL DEFAULT 0;`}, plan.DownStatements)
}

func TestDiffDroppedTable(t *testing.T) {
	curr := &schema.Snapshot{Version: 1, Dialect: "postgres"}

	plan := planFrom(t, curr)
	assert.Equal(t, []string{`DROP TABLE "posts";`}, plan.Statements)
	require.Len(t, plan.DownStatements, 1)
	assert.Contains(t, plan.DownStatements[0], `CREATE TABLE "posts"`)
}

func TestDiffNewTableStatementShape(t *testing.T) {
	dir := t.TempDir()
	plan, err := migrations.PlanMigration(dir, basePosts(), "base")
	require.NoError(t, err)

	require.Len(t, plan.Statements, 1)
	assert.Equal(t, "CREATE TABLE \"posts\" (\n"+
		"\t\"id\" bigserial NOT NULL,\n"+
		"\t\"title\" varchar NOT NULL,\n"+
		"\t\"views\" integer NOT NULL DEFAULT 0,\n"+
		"\tPRIMARY KEY (\"id\")\n"+
		");", plan.Statements[0])
}

func TestDiffPrimaryKeyChangeRejected(t *testing.T) {
	curr := basePosts()
	curr.Table("posts").Column("title").PrimaryKey = true

	dir := t.TempDir()
	_, err := migrations.Generate(dir, basePosts(), "base")
	require.NoError(t, err)

	_, err = migrations.PlanMigration(dir, curr, "next")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary key")
}
