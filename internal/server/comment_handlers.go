package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Body string `json:"body"`
}

// ListComments handles GET /api/articles/:slug/comments.
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListByArticle(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"comments": comments,
		"count":    len(comments),
	})
}

// CreateComment handles POST /api/articles/:slug/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), currentUserID(c), c.Params("slug"), req.Body)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// GetComment handles GET /api/articles/:slug/comments/:id.
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, written, err := parseID(c, "id", "Comment ID must be an integer")
	if written {
		return err
	}

	comment, err := s.commentService.Get(c.UserContext(), c.Params("slug"), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comment": comment})
}

// UpdateComment handles PUT /api/articles/:slug/comments/:id.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, written, err := parseID(c, "id", "Comment ID must be an integer")
	if written {
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.UserContext(), currentUserID(c), c.Params("slug"), id, req.Body)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles DELETE /api/articles/:slug/comments/:id.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, written, err := parseID(c, "id", "Comment ID must be an integer")
	if written {
		return err
	}

	if err := s.commentService.Delete(c.UserContext(), currentUserID(c), c.Params("slug"), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}

// ReplyToComment handles POST /api/articles/:slug/comments/:id/subcomment.
func (s *Server) ReplyToComment(c *fiber.Ctx) error {
	id, written, err := parseID(c, "id", "Comment ID must be an integer")
	if written {
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Reply(c.UserContext(), currentUserID(c), c.Params("slug"), id, req.Body)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}
