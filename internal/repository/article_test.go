package repository

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_ComputedCounters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	hater := createTestUser(t, db, "hater")
	article := createTestArticle(t, db, author, "counted")

	require.NoError(t, repo.SetReaction(ctx, fan.ID, article.ID, models.ReactionLike))
	require.NoError(t, repo.SetReaction(ctx, hater.ID, article.ID, models.ReactionDislike))
	require.NoError(t, repo.UpsertRating(ctx, fan.ID, article.ID, 5))
	require.NoError(t, repo.UpsertRating(ctx, hater.ID, article.ID, 2))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		Body: "nice", ArticleID: article.ID, AuthorID: fan.ID,
	}))

	got, err := repo.GetBySlug(ctx, "counted")
	require.NoError(t, err)

	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.DislikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.InDelta(t, 3.5, got.AverageRating, 0.001)
	assert.Equal(t, "author", got.Author.Username)
}

func TestArticleRepository_SetReactionReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "writer")
	reader := createTestUser(t, db, "reader")
	article := createTestArticle(t, db, author, "switched")

	require.NoError(t, repo.SetReaction(ctx, reader.ID, article.ID, models.ReactionLike))
	require.NoError(t, repo.SetReaction(ctx, reader.ID, article.ID, models.ReactionDislike))

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("user_id = ? AND article_id = ?", reader.ID, article.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "a user holds at most one reaction per article")

	reaction, err := repo.GetReaction(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.Equal(t, models.ReactionDislike, reaction.Value)
}

func TestArticleRepository_DeleteReaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "poster")
	reader := createTestUser(t, db, "toggler")
	article := createTestArticle(t, db, author, "toggled")

	require.NoError(t, repo.SetReaction(ctx, reader.ID, article.ID, models.ReactionLike))
	require.NoError(t, repo.DeleteReaction(ctx, reader.ID, article.ID))

	reaction, err := repo.GetReaction(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)
}

func TestArticleRepository_UpsertRatingOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "scored")
	critic := createTestUser(t, db, "critic")
	article := createTestArticle(t, db, author, "rated")

	require.NoError(t, repo.UpsertRating(ctx, critic.ID, article.ID, 5))
	require.NoError(t, repo.UpsertRating(ctx, critic.ID, article.ID, 2))

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).
		Where("user_id = ? AND article_id = ?", critic.ID, article.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetBySlug(ctx, "rated")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.AverageRating, 0.001)
}

func TestArticleRepository_GetBySlugNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	_, err := repo.GetBySlug(context.Background(), "missing")

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
