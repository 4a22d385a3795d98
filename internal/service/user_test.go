package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
)

func newUserService() (*MockUserRepository, *MockSubscriptionRepository, UserService) {
	userRepo := new(MockUserRepository)
	subRepo := new(MockSubscriptionRepository)
	return userRepo, subRepo, NewUserService(userRepo, subRepo)
}

func TestUserService_Get_NotFound(t *testing.T) {
	userRepo, _, svc := newUserService()

	userRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_SetPassword_Success(t *testing.T) {
	userRepo, _, svc := newUserService()

	user := &model.User{ID: 7, PasswordHash: hashPassword(t, "oldpassword")}
	userRepo.On("FindByID", mock.Anything, uint(7)).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	err := svc.SetPassword(context.Background(), 7, "oldpassword", "newpassword")

	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
	userRepo.AssertExpectations(t)
}

func TestUserService_SetPassword_WrongCurrent(t *testing.T) {
	userRepo, _, svc := newUserService()

	user := &model.User{ID: 7, PasswordHash: hashPassword(t, "oldpassword")}
	userRepo.On("FindByID", mock.Anything, uint(7)).Return(user, nil)

	err := svc.SetPassword(context.Background(), 7, "not-the-password", "newpassword")

	assert.ErrorIs(t, err, ErrWrongPassword)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_SetPassword_Anonymous(t *testing.T) {
	userRepo, _, svc := newUserService()

	err := svc.SetPassword(context.Background(), 0, "old", "new")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_AnnotateSubscribed_Anonymous(t *testing.T) {
	_, subRepo, svc := newUserService()

	users := []model.User{{ID: 1}, {ID: 2}}

	flags, err := svc.AnnotateSubscribed(context.Background(), 0, users)

	assert.NoError(t, err)
	assert.Equal(t, map[uint]bool{1: false, 2: false}, flags)
	subRepo.AssertNotCalled(t, "AuthorIDSet", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_AnnotateSubscribed_Authenticated(t *testing.T) {
	_, subRepo, svc := newUserService()

	users := []model.User{{ID: 1}, {ID: 2}, {ID: 3}}
	subRepo.On("AuthorIDSet", mock.Anything, uint(7), []uint{1, 2, 3}).
		Return(map[uint]struct{}{2: {}}, nil)

	flags, err := svc.AnnotateSubscribed(context.Background(), 7, users)

	assert.NoError(t, err)
	assert.Equal(t, map[uint]bool{1: false, 2: true, 3: false}, flags)
	subRepo.AssertExpectations(t)
}
