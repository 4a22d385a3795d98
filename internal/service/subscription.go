package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/repository"
)

// feedPreviewLimit caps how many recipes a followed author shows in the
// subscription feed; recipes_count stays uncapped.
const feedPreviewLimit = 3

// FeedItem is one followed author in the subscription feed: the author,
// a newest-first preview of their recipes and their total recipe count.
// IsSubscribed is definitionally true here since the feed lists the
// requester's own subscriptions.
type FeedItem struct {
	Author       model.User
	Recipes      []model.Recipe
	RecipesCount int64
}

// SubscriptionService handles follow/unfollow and the subscription feed.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID uint) (*FeedItem, error)
	Unsubscribe(ctx context.Context, userID, authorID uint) error
	Feed(ctx context.Context, userID uint, offset, limit int) ([]FeedItem, int64, error)
}

type subscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) SubscriptionService {
	return &subscriptionService{
		subRepo:    subRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe creates the follower -> author row and returns the author
// decorated as a feed item. Self-follow is rejected before any lookup;
// an existing pair is a conflict, with the unique index catching the
// concurrent double-insert race.
func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID uint) (*FeedItem, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	if userID == authorID {
		return nil, apperrors.ErrSelfSubscription
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	exists, err := s.subRepo.Exists(ctx, userID, authorID)
	if err != nil {
		return nil, fmt.Errorf("check subscription: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadySubscribed
	}

	sub := &model.Subscription{UserID: userID, AuthorID: authorID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	return s.buildFeedItem(ctx, *author)
}

// Unsubscribe deletes the pair; a missing pair is not-found.
func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find author: %w", err)
	}
	deleted, err := s.subRepo.Delete(ctx, userID, authorID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if !deleted {
		return apperrors.ErrSubscriptionNotFound
	}
	return nil
}

// Feed returns one page of followed authors, each shaped into a feed
// item. Pagination is the caller's slice; this only decorates the page.
func (s *subscriptionService) Feed(ctx context.Context, userID uint, offset, limit int) ([]FeedItem, int64, error) {
	if userID == 0 {
		return nil, 0, apperrors.ErrUnauthorized
	}

	authors, total, err := s.subRepo.ListAuthors(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list followed authors: %w", err)
	}

	items := make([]FeedItem, 0, len(authors))
	for _, author := range authors {
		item, err := s.buildFeedItem(ctx, author)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, nil
}

func (s *subscriptionService) buildFeedItem(ctx context.Context, author model.User) (*FeedItem, error) {
	recipes, err := s.recipeRepo.ListRecentByAuthor(ctx, author.ID, feedPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("load recipe preview: %w", err)
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	return &FeedItem{Author: author, Recipes: recipes, RecipesCount: count}, nil
}
