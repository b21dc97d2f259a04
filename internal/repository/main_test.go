package repository

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Article{},
		&models.Comment{},
		&models.Reaction{},
		&models.Rating{},
	), "migrate sqlite")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArticle(t *testing.T, db *gorm.DB, author *models.User, slug string) *models.Article {
	t.Helper()
	article := &models.Article{
		Slug:     slug,
		Title:    "Title for " + slug,
		Body:     "body",
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}
