package migrations_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/foodhub/database/migrations"
	"github.com/shashiranjanraj/foodhub/pkg/database"
	"github.com/shashiranjanraj/foodhub/pkg/migration"
)

func TestRunAndRollback(t *testing.T) {
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())
	for _, table := range []string{"users", "food", "orders", "feedback"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var out bytes.Buffer
	require.NoError(t, migration.New(db).WithOutput(&out).Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	require.NoError(t, migration.New(db).WithOutput(io.Discard).Rollback())
	assert.False(t, db.Migrator().HasTable("orders"))
	assert.False(t, db.Migrator().HasTable("users"))

	out.Reset()
	require.NoError(t, migration.New(db).WithOutput(&out).Status())
	assert.Contains(t, out.String(), "Pending")
}
