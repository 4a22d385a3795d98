package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/model"
)

// SubscriptionRepository defines follower -> author persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	Delete(ctx context.Context, userID, authorID uint) (bool, error)
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	AuthorIDSet(ctx context.Context, userID uint, authorIDs []uint) (map[uint]struct{}, error)
	ListAuthors(ctx context.Context, userID uint, offset, limit int) ([]model.User, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Delete removes the pair and reports whether a row existed.
func (r *subscriptionRepository) Delete(ctx context.Context, userID, authorID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Subscription{})
	return res.RowsAffected > 0, res.Error
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// AuthorIDSet returns which of the candidate authors the user follows,
// as one IN query regardless of batch size.
func (r *subscriptionRepository) AuthorIDSet(ctx context.Context, userID uint, authorIDs []uint) (map[uint]struct{}, error) {
	set := make(map[uint]struct{}, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListAuthors returns a page of the authors the user follows, in
// subscription order, with the total count before pagination.
func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID uint, offset, limit int) ([]model.User, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []model.User
	q := base.Session(&gorm.Session{}).Order("subscriptions.id")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}
