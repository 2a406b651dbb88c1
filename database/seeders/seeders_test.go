package seeders_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/foodhub/app/repositories"
	_ "github.com/shashiranjanraj/foodhub/database/migrations"
	"github.com/shashiranjanraj/foodhub/database/seeders"
	"github.com/shashiranjanraj/foodhub/pkg/auth"
	"github.com/shashiranjanraj/foodhub/pkg/cache"
	"github.com/shashiranjanraj/foodhub/pkg/database"
	"github.com/shashiranjanraj/foodhub/pkg/migration"
)

func TestRunAllIsIdempotent(t *testing.T) {
	cache.Use(cache.NewMemoryStore())
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, migration.New(db).WithOutput(io.Discard).Run())

	var out bytes.Buffer
	require.NoError(t, seeders.RunAll(db, &out))
	require.NoError(t, seeders.RunAll(db, io.Discard))
	assert.Contains(t, out.String(), "Running seeder: admin")

	ctx := context.Background()
	users := repositories.NewUserRepository(db)
	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	admin, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())
	assert.True(t, auth.CheckPassword(admin.Password, "admin123"))

	foods, err := repositories.NewFoodRepository(db).All(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 6)
}
