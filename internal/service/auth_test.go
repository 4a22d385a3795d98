package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodgram/internal/auth"
	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
)

const testJWTSecret = "test-secret"

func newAuthService() (*MockUserRepository, *MockTokenStore, AuthService) {
	userRepo := new(MockUserRepository)
	tokenStore := new(MockTokenStore)
	jwtService := auth.NewJWTService(testJWTSecret)
	return userRepo, tokenStore, NewAuthService(userRepo, jwtService, tokenStore)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo, _, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 1
		}).
		Return(nil)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "new@example.com",
		Username:  "newuser",
		FirstName: "New",
		LastName:  "User",
		Password:  "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "newuser", user.Username)
	// Stored hash must verify against the original password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	userRepo, _, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Username: "someone",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateRace(t *testing.T) {
	userRepo, _, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Username: "newuser",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hashPassword(t, "password123"),
		}, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user@example.com", auth.RefreshTokenExpiry).
		Return(nil)

	accessToken, refreshToken, user, err := svc.Login(context.Background(), "user@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, uint(1), user.ID)
	tokenStore.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hashPassword(t, "password123"),
		}, nil)

	_, _, _, err := svc.Login(context.Background(), "user@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenStore.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo, _, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_Blocked(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "blocked@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "blocked@example.com",
			PasswordHash: hashPassword(t, "password123"),
			IsBlocked:    true,
		}, nil)

	_, _, _, err := svc.Login(context.Background(), "blocked@example.com", "password123")

	assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
	tokenStore.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	user := &model.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: hashPassword(t, "password123"),
	}
	userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user@example.com", auth.RefreshTokenExpiry).
		Return(nil)

	_, refreshToken, _, err := svc.Login(context.Background(), "user@example.com", "password123")
	assert.NoError(t, err)

	tokenStore.On("GetRefreshToken", mock.Anything, mock.AnythingOfType("string")).
		Return(uint(1), "user@example.com", nil)
	userRepo.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

	accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestAuthService_RefreshToken_BlockedSinceLogin(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hashPassword(t, "password123"),
		}, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user@example.com", auth.RefreshTokenExpiry).
		Return(nil)

	_, refreshToken, _, err := svc.Login(context.Background(), "user@example.com", "password123")
	assert.NoError(t, err)

	// The account was blocked after the refresh token was issued.
	tokenStore.On("GetRefreshToken", mock.Anything, mock.AnythingOfType("string")).
		Return(uint(1), "user@example.com", nil)
	userRepo.On("FindByID", mock.Anything, uint(1)).
		Return(&model.User{ID: 1, Email: "user@example.com", IsBlocked: true}, nil)

	_, err = svc.RefreshToken(context.Background(), refreshToken)

	assert.ErrorIs(t, err, apperrors.ErrUserBlocked)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	_, _, svc := newAuthService()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hashPassword(t, "password123"),
		}, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user@example.com", auth.RefreshTokenExpiry).
		Return(nil)

	accessToken, _, _, err := svc.Login(context.Background(), "user@example.com", "password123")
	assert.NoError(t, err)

	// Access tokens carry no JTI and cannot be replayed as refresh tokens.
	_, err = svc.RefreshToken(context.Background(), accessToken)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	tokenStore.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_Revoked(t *testing.T) {
	userRepo, tokenStore, svc := newAuthService()

	userRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.User{
			ID:           1,
			Email:        "user@example.com",
			PasswordHash: hashPassword(t, "password123"),
		}, nil)
	tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user@example.com", auth.RefreshTokenExpiry).
		Return(nil)

	_, refreshToken, _, err := svc.Login(context.Background(), "user@example.com", "password123")
	assert.NoError(t, err)

	// Token signature is valid but the store no longer knows it.
	tokenStore.On("GetRefreshToken", mock.Anything, mock.AnythingOfType("string")).
		Return(uint(0), "", ErrInvalidRefreshToken)

	_, err = svc.RefreshToken(context.Background(), refreshToken)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}
