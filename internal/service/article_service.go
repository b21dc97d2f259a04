package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
)

// ArticleService provides article, reaction, and rating business logic.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

// ArticleInput is the input for creating or updating an article.
type ArticleInput struct {
	Title       string
	Description string
	Body        string
}

// NewArticleService returns a new ArticleService. isAdmin reports whether a
// user holds the admin role.
func NewArticleService(articleRepo repository.ArticleRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, isAdmin: isAdmin}
}

func validateArticleInput(in ArticleInput) error {
	fields := map[string][]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = append(fields["title"], "title is required")
	}
	if strings.TrimSpace(in.Body) == "" {
		fields["body"] = append(fields["body"], "body is required")
	}
	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}
	return nil
}

// Create slugs the title and stores the article. On a slug collision a short
// random suffix is appended and the insert retried once.
func (s *ArticleService) Create(ctx context.Context, authorID uint, in ArticleInput) (*models.Article, error) {
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	article := &models.Article{
		Slug:        validation.Slugify(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Body:        in.Body,
		AuthorID:    authorID,
	}

	err := s.articleRepo.Create(ctx, article)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
			return nil, err
		}
		article.Slug = fmt.Sprintf("%s-%s", article.Slug, uuid.NewString()[:8])
		if err := s.articleRepo.Create(ctx, article); err != nil {
			return nil, err
		}
	}
	return s.articleRepo.GetBySlug(ctx, article.Slug)
}

// Get returns an article by slug with its computed counters.
func (s *ArticleService) Get(ctx context.Context, slug string) (*models.Article, error) {
	return s.articleRepo.GetBySlug(ctx, slug)
}

// List returns a page of articles, newest first.
func (s *ArticleService) List(ctx context.Context, limit, offset int) ([]models.Article, error) {
	return s.articleRepo.List(ctx, limit, offset)
}

// Update modifies an article. Only the author may update; the slug is stable
// across title edits.
func (s *ArticleService) Update(ctx context.Context, userID uint, slug string, in ArticleInput) (*models.Article, error) {
	if err := validateArticleInput(in); err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != userID {
		return nil, models.NewAuthError("You do not have permission to modify this article")
	}

	article.Title = in.Title
	article.Description = in.Description
	article.Body = in.Body
	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}
	return s.articleRepo.GetBySlug(ctx, slug)
}

// Delete removes an article. The author may delete it; so may admins.
func (s *ArticleService) Delete(ctx context.Context, userID uint, slug string) error {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if article.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewAuthError("You do not have permission to modify this article")
		}
	}
	return s.articleRepo.Delete(ctx, article)
}

// React applies a like or dislike. Repeating the same reaction withdraws it;
// reacting the opposite way switches in a single write.
func (s *ArticleService) React(ctx context.Context, userID uint, slug string, value int) (*models.Article, error) {
	if value != models.ReactionLike && value != models.ReactionDislike {
		return nil, models.NewValidationError("Invalid reaction")
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	kind := "like"
	if value == models.ReactionDislike {
		kind = "dislike"
	}

	existing, err := s.articleRepo.GetReaction(ctx, userID, article.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		if err := s.articleRepo.SetReaction(ctx, userID, article.ID, value); err != nil {
			return nil, err
		}
		observability.ReactionsTotal.WithLabelValues(kind, "added").Inc()
	case existing.Value == value:
		if err := s.articleRepo.DeleteReaction(ctx, userID, article.ID); err != nil {
			return nil, err
		}
		observability.ReactionsTotal.WithLabelValues(kind, "removed").Inc()
	default:
		if err := s.articleRepo.SetReaction(ctx, userID, article.ID, value); err != nil {
			return nil, err
		}
		observability.ReactionsTotal.WithLabelValues(kind, "switched").Inc()
	}

	// Reactions change the cached counters.
	cache.InvalidateArticle(ctx, slug)
	return s.articleRepo.GetBySlug(ctx, slug)
}

// Rate records the caller's score for an article. Authors cannot rate their
// own work; re-rating overwrites the previous score.
func (s *ArticleService) Rate(ctx context.Context, userID uint, slug string, score int) (*models.Article, error) {
	if score < 1 || score > 5 {
		return nil, models.NewValidationError("Rating must be an integer between 1 and 5")
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID == userID {
		return nil, models.NewValidationError("You cannot rate your own article")
	}

	if err := s.articleRepo.UpsertRating(ctx, userID, article.ID, score); err != nil {
		return nil, err
	}
	observability.RatingsSubmitted.Observe(float64(score))

	cache.InvalidateArticle(ctx, slug)
	return s.articleRepo.GetBySlug(ctx, slug)
}
