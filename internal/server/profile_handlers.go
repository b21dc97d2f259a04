package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type profileRequest struct {
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// CreateProfile handles POST /api/profiles/.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Create(c.UserContext(), currentUserID(c), service.ProfileInput{
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"profile": profile})
}

// EditProfile handles PUT /api/profiles/edit.
func (s *Server) EditProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Edit(c.UserContext(), currentUserID(c), service.ProfileInput{
		Avatar: req.Avatar,
		Bio:    req.Bio,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"profile": profile})
}

// GetProfile handles GET /api/profiles/:user_id. Only active profiles are
// visible.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, written, err := parseID(c, "user_id", "User ID must be an integer")
	if written {
		return err
	}

	profile, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"profile": profile})
}

// ListProfiles handles GET /api/profiles/. Active profiles are returned as a
// map keyed by username.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.ListActive(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	byUsername := make(map[string]models.Profile, len(profiles))
	for _, p := range profiles {
		byUsername[p.Username] = p
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"profiles": byUsername})
}

// DeactivateProfile handles PUT /api/profiles/deactivate.
func (s *Server) DeactivateProfile(c *fiber.Ctx) error {
	if err := s.profileService.Deactivate(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Your profile has been deactivated",
	})
}

// ActivateProfile handles PUT /api/profiles/activate.
func (s *Server) ActivateProfile(c *fiber.Ctx) error {
	if err := s.profileService.Activate(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Your profile has been activated",
	})
}
