package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/repository"
)

// ErrWrongPassword is returned when the current password check fails
// on a password change.
var ErrWrongPassword = errors.New("current password is incorrect")

// UserService handles user profile operations and the per-requester
// is_subscribed annotation of user listings.
type UserService interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, int64, error)
	SetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	AnnotateSubscribed(ctx context.Context, requesterID uint, users []model.User) (map[uint]bool, error)
}

type userService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository) UserService {
	return &userService{
		userRepo: userRepo,
		subRepo:  subRepo,
	}
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	return s.userRepo.List(ctx, offset, limit)
}

// SetPassword verifies the current password before storing the new hash.
func (s *userService) SetPassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// AnnotateSubscribed returns, per listed user, whether the requester
// follows them. Anonymous requesters get all-false without a query;
// authenticated requesters cost one IN query per page.
func (s *userService) AnnotateSubscribed(ctx context.Context, requesterID uint, users []model.User) (map[uint]bool, error) {
	flags := make(map[uint]bool, len(users))
	if requesterID == 0 {
		for _, u := range users {
			flags[u.ID] = false
		}
		return flags, nil
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followed, err := s.subRepo.AuthorIDSet(ctx, requesterID, ids)
	if err != nil {
		return nil, fmt.Errorf("load subscription set: %w", err)
	}
	for _, u := range users {
		_, ok := followed[u.ID]
		flags[u.ID] = ok
	}
	return flags, nil
}
