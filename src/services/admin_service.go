package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawonbufatim/storefront-server/src/logging"
	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories"
	"github.com/rs/zerolog"
)

// Seeded admin profile for first boot. There is no self-service
// registration; further admins are created out of band.
const (
	seedAdminName  = "Administrator"
	seedAdminEmail = "admin@pawonbufatim.com"
)

// AdminService handles admin authentication and first-boot seeding
type AdminService struct {
	repo   repositories.AdminRepository
	logger zerolog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(repo repositories.AdminRepository) *AdminService {
	return &AdminService{
		repo:   repo,
		logger: logging.NewLogger("admin_service"),
	}
}

// Authenticate verifies username and password against the active admin row.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.repo.GetActiveByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// Seed creates the default admin account when no admin rows exist yet.
// Subsequent boots are a no-op.
func (s *AdminService) Seed(ctx context.Context, username, password string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		Name:         seedAdminName,
		Email:        seedAdminEmail,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("default admin created")
	return nil
}
