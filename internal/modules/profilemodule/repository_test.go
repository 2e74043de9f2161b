package profilemodule

import (
	"errors"
	"testing"

	"github.com/mantonx/paradiso/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Profile{}))
	return db
}

func TestCreateAndGetByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create("Alice")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Alice", created.Name)

	found, err := repo.GetByName("Alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// Lookup is exact, not case-insensitive
	found, err = repo.GetByName("alice")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Create("Alice")
	require.NoError(t, err)

	_, err = repo.Create("Alice")
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := repo.Create(name)
		require.NoError(t, err)
	}

	profiles, err := repo.List()
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, "Carol", profiles[0].Name)
	assert.Equal(t, "Alice", profiles[2].Name)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	created, err := repo.Create("Alice")
	require.NoError(t, err)

	existed, err := repo.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}
