package service

import (
	"context"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// CommentService provides comment and reply business logic. Every operation
// is scoped to an article slug; a comment reached through the wrong article
// is treated as not found.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

// NewCommentService returns a new CommentService. isAdmin reports whether a
// user holds the admin role.
func NewCommentService(
	commentRepo repository.CommentRepository,
	articleRepo repository.ArticleRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{commentRepo: commentRepo, articleRepo: articleRepo, isAdmin: isAdmin}
}

// getScoped resolves the article by slug and the comment by id, rejecting
// comments that belong to a different article.
func (s *CommentService) getScoped(ctx context.Context, slug string, id uint) (*models.Article, *models.Comment, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if comment.ArticleID != article.ID {
		return nil, nil, models.NewNotFoundError("Comment not found")
	}
	return article, comment, nil
}

// Create adds a top-level comment to an article.
func (s *CommentService) Create(ctx context.Context, userID uint, slug, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}

	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	cache.InvalidateArticle(ctx, slug)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Reply adds a reply to an existing comment on the article. Replies attach
// one level deep only.
func (s *CommentService) Reply(ctx context.Context, userID uint, slug string, parentID uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}

	article, parent, err := s.getScoped(ctx, slug, parentID)
	if err != nil {
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, models.NewValidationError("Replies cannot be nested further")
	}

	reply := &models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  userID,
		ParentID:  &parent.ID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	cache.InvalidateArticle(ctx, slug)
	return s.commentRepo.GetByID(ctx, reply.ID)
}

// Get returns a comment on the article with its replies.
func (s *CommentService) Get(ctx context.Context, slug string, id uint) (*models.Comment, error) {
	_, comment, err := s.getScoped(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByArticle returns the top-level comments on an article.
func (s *CommentService) ListByArticle(ctx context.Context, slug string) ([]models.Comment, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArticle(ctx, article.ID)
}

// Update modifies a comment. Only the author may update.
func (s *CommentService) Update(ctx context.Context, userID uint, slug string, id uint, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Comment body is required")
	}

	_, comment, err := s.getScoped(ctx, slug, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, models.NewAuthError("You do not have permission to modify this comment")
	}

	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, id)
}

// Delete removes a comment. The comment author, the article author, and
// admins may delete.
func (s *CommentService) Delete(ctx context.Context, userID uint, slug string, id uint) error {
	article, comment, err := s.getScoped(ctx, slug, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && article.AuthorID != userID {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewAuthError("You do not have permission to modify this comment")
		}
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateArticle(ctx, slug)
	return nil
}
