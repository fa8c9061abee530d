package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
)

func TestRegister(t *testing.T) {
	t.Run("rejects short passwords", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)

		_, err := service.Register(context.Background(), RegisterInput{
			FirstName: "Marta", Email: "marta@example.com", Password: "short",
		})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("defaults the role to vocal and normalizes the email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := service.Register(context.Background(), RegisterInput{
			FirstName: "Marta", Email: "  Marta@Example.COM ", Password: "secret-password",
		})
		require.NoError(t, err)

		assert.Equal(t, models.RoleVocal, user.Role)
		assert.Equal(t, "marta@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)

		_, err := service.Register(context.Background(), RegisterInput{
			FirstName: "Marta", Email: "marta@example.com", Password: "secret-password", Role: "referee",
		})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("maps duplicate emails to a conflict", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Return(repositories.ErrUserEmailConflict)

		_, err := service.Register(context.Background(), RegisterInput{
			FirstName: "Marta", Email: "marta@example.com", Password: "secret-password",
		})
		assert.ErrorIs(t, err, ErrUserEmailConflict)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := func() *models.User {
		return &models.User{
			ID:           1,
			Email:        "marta@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
	}

	t.Run("succeeds with the right password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "marta@example.com").Return(stored(), nil)

		user, err := service.Login(context.Background(), LoginInput{
			Email: "Marta@Example.com", Password: "secret-password",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "marta@example.com").Return(stored(), nil)

		_, err := service.Login(context.Background(), LoginInput{
			Email: "marta@example.com", Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same error as a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := NewAuthService(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
			Return(nil, repositories.ErrUserNotFound)

		_, err := service.Login(context.Background(), LoginInput{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
