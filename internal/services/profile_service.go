package services

import (
	"context"
	"fmt"
	"strings"

	"roomlink/internal/common"
	"roomlink/internal/models"
	"roomlink/internal/repositories"

	"github.com/google/uuid"
)

// ProfileService maps an authenticated identity to a marketplace profile
// and creates the profile at first login. A profile's role never changes
// after creation.
type ProfileService interface {
	Create(ctx context.Context, input *CreateProfileInput) (*models.Profile, error)
	// Resolve returns the profile linked to the identity carried by ctx.
	Resolve(ctx context.Context) (*models.Profile, error)
}

type CreateProfileInput struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type profileService struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Create(ctx context.Context, input *CreateProfileInput) (*models.Profile, error) {
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return nil, common.ErrNotAuthenticated
	}

	if !models.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: role must be tenant or owner", common.ErrValidation)
	}
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	if !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: email is not valid", common.ErrValidation)
	}
	if err := common.ValidateRequiredString(input.Phone, "phone"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if existing != nil {
		// Role is immutable once set; there is no profile update path
		return nil, fmt.Errorf("%w: profile already exists for this user", common.ErrValidation)
	}

	profile := &models.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Role:   input.Role,
		Name:   strings.TrimSpace(input.Name),
		Email:  strings.TrimSpace(input.Email),
		Phone:  strings.TrimSpace(input.Phone),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return profile, nil
}

func (s *profileService) Resolve(ctx context.Context) (*models.Profile, error) {
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return nil, common.ErrNotAuthenticated
	}

	var profile *models.Profile
	err := common.WithRetry(ctx, common.DefaultRetryAttempts, common.DefaultRetryBackoff, func(ctx context.Context) error {
		var err error
		profile, err = s.profileRepo.GetByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	if profile == nil {
		return nil, common.ErrProfileNotFound
	}
	return profile, nil
}
