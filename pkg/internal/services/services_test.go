package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	localCache "github.com/inkwellhq/inkwell/pkg/internal/cache"
	"github.com/inkwellhq/inkwell/pkg/internal/database"
	"github.com/inkwellhq/inkwell/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDatabase(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	database.C = db

	if localCache.S == nil {
		require.NoError(t, localCache.NewStore())
	}
	InvalidateTagNamesCache()
}

func createTestAccount(t *testing.T, name string) models.Account {
	t.Helper()

	account, err := NewAccount(name, name+"@example.com", "pw123456")
	require.NoError(t, err)
	return account
}

func createTestArticle(t *testing.T, author models.Account, title string, tags ...string) models.Article {
	t.Helper()

	item, err := NewArticle(author, models.Article{
		Title:       title,
		Description: "d",
		Body:        "b",
	}, tags)
	require.NoError(t, err)
	return item
}
