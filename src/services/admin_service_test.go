package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawonbufatim/storefront-server/src/models"
	"github.com/pawonbufatim/storefront-server/src/repositories/mock"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAdminService_Authenticate_Success(t *testing.T) {
	repo := mock.NewAdminRepository()
	repo.GetActiveByUsernameFunc = func(ctx context.Context, username string) (*models.Admin, error) {
		return &models.Admin{
			ID:           1,
			Username:     username,
			PasswordHash: hashPassword(t, "admin123"),
			Name:         "Administrator",
			Email:        "admin@pawonbufatim.com",
			IsActive:     true,
		}, nil
	}

	svc := NewAdminService(repo)
	admin, err := svc.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "Administrator", admin.Name)
}

func TestAdminService_Authenticate_WrongPassword(t *testing.T) {
	repo := mock.NewAdminRepository()
	repo.GetActiveByUsernameFunc = func(ctx context.Context, username string) (*models.Admin, error) {
		return &models.Admin{
			ID:           1,
			Username:     username,
			PasswordHash: hashPassword(t, "admin123"),
			IsActive:     true,
		}, nil
	}

	svc := NewAdminService(repo)
	_, err := svc.Authenticate(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_Authenticate_UnknownUser(t *testing.T) {
	svc := NewAdminService(mock.NewAdminRepository())
	_, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_Seed_FirstBoot(t *testing.T) {
	repo := mock.NewAdminRepository()
	svc := NewAdminService(repo)

	err := svc.Seed(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Len(t, repo.Calls["Create"], 1)

	created := repo.Calls["Create"][0].(*models.Admin)
	assert.Equal(t, "admin", created.Username)
	assert.Equal(t, "Administrator", created.Name)
	assert.Equal(t, "admin@pawonbufatim.com", created.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("admin123")))
}

func TestAdminService_Seed_SkipsWhenAdminsExist(t *testing.T) {
	repo := mock.NewAdminRepository()
	repo.CountFunc = func(ctx context.Context) (int, error) { return 1, nil }
	svc := NewAdminService(repo)

	err := svc.Seed(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Empty(t, repo.Calls["Create"])
}
