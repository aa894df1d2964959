package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &model.User{ID: 7, Name: "Admin", Email: "admin@example.com", PasswordHash: string(hashedPassword), Role: model.RoleAdmin}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "admin@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
			},
		},
		{
			name:     "invalid credentials - user not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - wrong password",
			email:    "admin@example.com",
			password: "password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "invalid credentials - blank password skips lookup",
			email:         "admin@example.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "invalid credentials - malformed email",
			email:    "admin",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(mockRepo, jwtService)

			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)

				claims, err := jwtService.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, admin.ID, claims.UserID)
				assert.Equal(t, model.RoleAdmin, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, errors.New("connection refused"))

	_, _, err := NewAuthService(mockRepo, auth.NewJWTService("s", 0)).Login(context.Background(), "a@example.com", "x")

	assert.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestUserService_SeedAdmin(t *testing.T) {
	admin := config.Admin{Name: "Root", Email: "root@example.com", Password: "s3cret"}

	t.Run("creates missing admin with hashed password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "root@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleAdmin && u.Name == "Root" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) == nil
		})).Return(nil)

		created, err := NewUserService(mockRepo, nil).SeedAdmin(context.Background(), admin)

		require.NoError(t, err)
		assert.True(t, created)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing admin untouched", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "root@example.com").Return(&model.User{ID: 1}, nil)

		created, err := NewUserService(mockRepo, nil).SeedAdmin(context.Background(), admin)

		require.NoError(t, err)
		assert.False(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skipped without credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		created, err := NewUserService(mockRepo, nil).SeedAdmin(context.Background(), config.Admin{Email: "x@example.com"})

		require.NoError(t, err)
		assert.False(t, created)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

	user, err := NewUserService(mockRepo, nil).CreateUser(context.Background(), "A", "a@example.com", "pw", model.RoleUser)

	assert.Nil(t, user)
	assert.Equal(t, apperrors.ErrEmailTaken, err)
}

func TestUserService_GetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Email: "a@example.com", PasswordHash: "hash"}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewUserService(mockRepo, nil)

	user, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash never leaves the store through the cache encoding")

	_, err = svc.GetUser(context.Background(), 2)
	assert.Equal(t, apperrors.ErrUserNotFound, err)
}
