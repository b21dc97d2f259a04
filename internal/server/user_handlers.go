package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser handles GET /api/user.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.Get(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

type updateUserRequest struct {
	User *struct {
		Password string `json:"password"`
	} `json:"user"`
	Password string `json:"password"`
}

// UpdateCurrentUser handles PUT /api/user. Email and username are immutable;
// only the password can be changed.
func (s *Server) UpdateCurrentUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	password := req.Password
	if req.User != nil {
		password = req.User.Password
	}
	if password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No updatable fields provided"))
	}

	user, err := s.userService.ChangePassword(c.UserContext(), currentUserID(c), password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}
