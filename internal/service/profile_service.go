package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// ProfileService provides profile lifecycle logic: creation, editing, and
// the activation state machine.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// ProfileInput is the input for creating or editing a profile.
type ProfileInput struct {
	Avatar string
	Bio    string
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Create creates the caller's profile. A user holds at most one profile; a
// deactivated profile blocks creation until it is activated again.
func (s *ProfileService) Create(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := validation.ValidateAvatar(in.Avatar); err != nil {
		return nil, models.NewFieldValidationError(map[string][]string{
			"avatar": {err.Error()},
		})
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.ActiveProfile {
			return nil, models.NewStateError("You deactivated your profile. Please activate to continue")
		}
		return nil, models.NewConflictError("A user with this profile already exists")
	}

	profile := &models.Profile{
		UserID:        userID,
		Avatar:        in.Avatar,
		Bio:           in.Bio,
		ActiveProfile: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Edit updates the caller's profile. Editing requires an existing, active
// profile.
func (s *ProfileService) Edit(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := validation.ValidateAvatar(in.Avatar); err != nil {
		return nil, models.NewFieldValidationError(map[string][]string{
			"avatar": {err.Error()},
		})
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("User profile not found. Please create one")
	}
	if !profile.ActiveProfile {
		return nil, models.NewStateError("You deactivated your profile. Please activate to continue")
	}

	profile.Avatar = in.Avatar
	profile.Bio = in.Bio
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Get returns the profile of the given user if it is active. Inactive
// profiles are hidden from readers.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.ActiveProfile {
		return nil, models.NewNotFoundError("User profile does not exist")
	}
	return profile, nil
}

// ListActive returns all active profiles.
func (s *ProfileService) ListActive(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profileRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, models.NewNotFoundError("No user profiles found")
	}
	return profiles, nil
}

// Deactivate hides the caller's profile. Deactivating an already inactive
// profile is rejected.
func (s *ProfileService) Deactivate(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return models.NewNotFoundError("User profile not found")
	}
	if !profile.ActiveProfile {
		return models.NewStateError("You deactivated your profile. Please activate to continue")
	}

	profile.ActiveProfile = false
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}
	observability.ProfileTransitions.WithLabelValues("deactivate").Inc()
	return nil
}

// Activate restores a deactivated profile. Activating an already active
// profile is rejected.
func (s *ProfileService) Activate(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return models.NewNotFoundError("User profile not found")
	}
	if profile.ActiveProfile {
		return models.NewStateError("Your profile is already active and viewable by other users")
	}

	profile.ActiveProfile = true
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}
	observability.ProfileTransitions.WithLabelValues("activate").Inc()
	return nil
}
