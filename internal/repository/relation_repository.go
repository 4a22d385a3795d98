package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/model"
)

// FavoriteRepository defines (user, recipe) favorite persistence.
type FavoriteRepository interface {
	Create(ctx context.Context, fav *model.Favorite) error
	Delete(ctx context.Context, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	RecipeIDSet(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]struct{}, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, fav *model.Favorite) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// Delete removes the pair and reports whether a row existed.
func (r *favoriteRepository) Delete(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{})
	return res.RowsAffected > 0, res.Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// RecipeIDSet returns which of the candidate recipes the user has
// favorited, as one IN query regardless of batch size.
func (r *favoriteRepository) RecipeIDSet(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]struct{}, error) {
	set := make(map[uint]struct{}, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// CartRepository defines (user, recipe) shopping-cart persistence.
type CartRepository interface {
	Create(ctx context.Context, entry *model.ShoppingCart) error
	Delete(ctx context.Context, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	RecipeIDSet(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]struct{}, error)
	ListByUser(ctx context.Context, userID uint) ([]model.ShoppingCart, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new shopping-cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, entry *model.ShoppingCart) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID, recipeID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.ShoppingCart{})
	return res.RowsAffected > 0, res.Error
}

func (r *cartRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// RecipeIDSet returns which of the candidate recipes sit in the user's
// cart, as one IN query regardless of batch size.
func (r *cartRepository) RecipeIDSet(ctx context.Context, userID uint, recipeIDs []uint) (map[uint]struct{}, error) {
	set := make(map[uint]struct{}, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.ShoppingCart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListByUser loads the user's cart entries with each recipe's
// ingredient lines, which is everything the shopping list needs.
func (r *cartRepository) ListByUser(ctx context.Context, userID uint) ([]model.ShoppingCart, error) {
	var entries []model.ShoppingCart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Recipe.Ingredients.Ingredient").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
