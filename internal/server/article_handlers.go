package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type articleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// ListArticles handles GET /api/articles/.
func (s *Server) ListArticles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	articles, err := s.articleService.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"articles": articles,
		"count":    len(articles),
	})
}

// CreateArticle handles POST /api/articles/.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Create(c.UserContext(), currentUserID(c), service.ArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"article": article})
}

// GetArticle handles GET /api/articles/:slug.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	article, err := s.articleService.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"article": article})
}

// UpdateArticle handles PUT /api/articles/:slug.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	var req articleRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Update(c.UserContext(), currentUserID(c), c.Params("slug"), service.ArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"article": article})
}

// DeleteArticle handles DELETE /api/articles/:slug.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	if err := s.articleService.Delete(c.UserContext(), currentUserID(c), c.Params("slug")); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Article deleted",
	})
}

// LikeArticle handles POST /api/articles/:slug/like.
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	return s.react(c, models.ReactionLike)
}

// DislikeArticle handles POST /api/articles/:slug/dislike.
func (s *Server) DislikeArticle(c *fiber.Ctx) error {
	return s.react(c, models.ReactionDislike)
}

func (s *Server) react(c *fiber.Ctx, value int) error {
	article, err := s.articleService.React(c.UserContext(), currentUserID(c), c.Params("slug"), value)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"article": article})
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// RateArticle handles POST /api/rate/:slug.
func (s *Server) RateArticle(c *fiber.Ctx) error {
	var req rateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Rating must be an integer between 1 and 5"))
	}

	article, err := s.articleService.Rate(c.UserContext(), currentUserID(c), c.Params("slug"), req.Rating)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"article": article})
}
