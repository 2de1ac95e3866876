package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/photostudio-crm/internal/lib/jwt"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/password"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UsersMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestMaker() jwt.Maker {
	return jwt.NewMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMocks func(m *UsersMock)
		wantErr    error
	}{
		{
			name:  "успешная регистрация",
			email: "anna@example.com",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(nil, models.ErrNotFound).Once()
				m.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "anna@example.com" && u.PasswordHash != "secret123"
				})).Return("uid-1", nil).Once()
			},
		},
		{
			name:  "почта приводится к нижнему регистру",
			email: "  Anna@Example.COM ",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(nil, models.ErrNotFound).Once()
				m.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "anna@example.com"
				})).Return("uid-1", nil).Once()
			},
		},
		{
			name:  "занятая почта",
			email: "anna@example.com",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "anna@example.com").
					Return(&models.User{UID: "uid-1", Email: "anna@example.com"}, nil).Once()
			},
			wantErr: models.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usersMock := new(UsersMock)
			tt.setupMocks(usersMock)

			service := NewAuthService(usersMock, newTestMaker())
			user, token, err := service.Register(context.Background(), "Anna", tt.email, "secret123")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, "uid-1", user.UID)
			usersMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)
	stored := &models.User{UID: "uid-1", Name: "Anna", Email: "anna@example.com", PasswordHash: hash}

	tests := []struct {
		name        string
		email       string
		rawPassword string
		setupMocks  func(m *UsersMock)
		wantErr     error
	}{
		{
			name:        "успешный вход",
			email:       "anna@example.com",
			rawPassword: "secret123",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(stored, nil).Once()
			},
		},
		{
			name:        "неверный пароль",
			email:       "anna@example.com",
			rawPassword: "wrongpass",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "anna@example.com").Return(stored, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:        "несуществующая почта",
			email:       "ghost@example.com",
			rawPassword: "secret123",
			setupMocks: func(m *UsersMock) {
				m.On("GetUserByEmail", mock.Anything, "ghost@example.com").
					Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usersMock := new(UsersMock)
			tt.setupMocks(usersMock)

			service := NewAuthService(usersMock, newTestMaker())
			user, token, err := service.Login(context.Background(), tt.email, tt.rawPassword)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, "uid-1", user.UID)
			usersMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	maker := newTestMaker()
	usersMock := new(UsersMock)
	service := NewAuthService(usersMock, maker)

	token, err := maker.GenerateToken("uid-1")
	require.NoError(t, err)

	usersMock.On("GetUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", Email: "anna@example.com"}, nil).Once()

	user, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)

	_, err = service.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)

	usersMock.AssertExpectations(t)
}

func TestAuthService_ValidateToken_UnknownUser(t *testing.T) {
	maker := newTestMaker()
	usersMock := new(UsersMock)
	service := NewAuthService(usersMock, maker)

	token, err := maker.GenerateToken("uid-gone")
	require.NoError(t, err)

	usersMock.On("GetUser", mock.Anything, "uid-gone").
		Return(nil, models.ErrNotFound).Once()

	_, err = service.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, models.ErrNotFound)

	usersMock.AssertExpectations(t)
}
