package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// articleColumns selects article fields plus the computed reaction counters,
// comment count and rating average.
const articleColumns = `articles.*,
	(SELECT COUNT(*) FROM reactions WHERE reactions.article_id = articles.id AND reactions.value = 1) AS likes_count,
	(SELECT COUNT(*) FROM reactions WHERE reactions.article_id = articles.id AND reactions.value = -1) AS dislikes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id AND comments.deleted_at IS NULL) AS comments_count,
	(SELECT COALESCE(AVG(score), 0) FROM ratings WHERE ratings.article_id = articles.id) AS average_rating`

// ArticleRepository defines persistence operations for articles, reactions
// and ratings.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, limit, offset int) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, article *models.Article) error

	GetReaction(ctx context.Context, userID, articleID uint) (*models.Reaction, error)
	SetReaction(ctx context.Context, userID, articleID uint, value int) error
	DeleteReaction(ctx context.Context, userID, articleID uint) error

	UpsertRating(ctx context.Context, userID, articleID uint, score int) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a new ArticleRepository implementation.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("insert", "articles")()
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An article with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetBySlug reads through the cache; counters stay fresh because every write
// that moves them invalidates the slug's key.
func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := cache.Aside(ctx, cache.ArticleKey(slug), &article, cache.ArticleTTL, func() error {
		defer observability.TrackQuery("select", "articles")()
		if err := r.db.WithContext(ctx).
			Select(articleColumns).
			Preload("Author").
			Where("articles.slug = ?", slug).
			First(&article).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Article not found")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, limit, offset int) ([]models.Article, error) {
	var articles []models.Article
	defer observability.TrackQuery("select", "articles")()
	if err := r.db.WithContext(ctx).
		Select(articleColumns).
		Preload("Author").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return articles, nil
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("update", "articles")()
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("An article with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	defer observability.TrackQuery("delete", "articles")()
	if err := r.db.WithContext(ctx).Delete(article).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateArticle(ctx, article.Slug)
	return nil
}

// GetReaction returns the user's reaction on an article, or (nil, nil) when
// no reaction exists.
func (r *articleRepository) GetReaction(ctx context.Context, userID, articleID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	defer observability.TrackQuery("select", "reactions")()
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

// SetReaction writes the user's reaction, replacing any existing one in a
// single logical operation.
func (r *articleRepository) SetReaction(ctx context.Context, userID, articleID uint, value int) error {
	defer observability.TrackQuery("upsert", "reactions")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reaction{}).
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Update("value", value)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&models.Reaction{
				UserID:    userID,
				ArticleID: articleID,
				Value:     value,
			}).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *articleRepository) DeleteReaction(ctx context.Context, userID, articleID uint) error {
	defer observability.TrackQuery("delete", "reactions")()
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Reaction{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UpsertRating writes the user's score for an article, overwriting any
// previous score.
func (r *articleRepository) UpsertRating(ctx context.Context, userID, articleID uint, score int) error {
	defer observability.TrackQuery("upsert", "ratings")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Rating{}).
			Where("user_id = ? AND article_id = ?", userID, articleID).
			Update("score", score)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&models.Rating{
				UserID:    userID,
				ArticleID: articleID,
				Score:     score,
			}).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
