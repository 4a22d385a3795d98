package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/repository"
)

const recipeCacheTTL = 5 * time.Minute

// ImageStore persists uploaded recipe images. Satisfied by media.Store.
type ImageStore interface {
	SaveBase64(data string) (string, error)
	Remove(rel string) error
}

// RecipeCache is the byte cache behind recipe reads. Satisfied by
// cache.Client, which fails safe, so every method here may be treated
// as best-effort.
type RecipeCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// IngredientAmount is one ingredient reference with its per-recipe quantity.
type IngredientAmount struct {
	ID     uint `json:"id" validate:"required"`
	Amount int  `json:"amount" validate:"required"`
}

// RecipeInput carries the fields of a recipe create/update request.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	ImageBase64 string
	TagSlugs    []string
	Ingredients []IngredientAmount
}

// RecipeService handles recipe CRUD and the favorite/cart toggles.
type RecipeService interface {
	Create(ctx context.Context, authorID uint, input RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, recipeID uint, input RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, userID, recipeID uint) error
	Get(ctx context.Context, id uint) (*model.Recipe, error)
	List(ctx context.Context, filter repository.RecipeFilter) ([]model.Recipe, int64, error)
	Favorite(ctx context.Context, userID, recipeID uint) error
	Unfavorite(ctx context.Context, userID, recipeID uint) error
	AddToCart(ctx context.Context, userID, recipeID uint) error
	RemoveFromCart(ctx context.Context, userID, recipeID uint) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.CartRepository
	images         ImageStore
	cache          RecipeCache
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	images ImageStore,
	cache RecipeCache,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		images:         images,
		cache:          cache,
	}
}

func (s *recipeService) cacheKey(id uint) string {
	return fmt.Sprintf("recipe:%d", id)
}

// resolveInput validates the request and resolves tag slugs and
// ingredient ids against the reference data.
func (s *recipeService) resolveInput(ctx context.Context, input RecipeInput) ([]model.Tag, []model.RecipeIngredient, error) {
	if input.CookingTime < 1 {
		return nil, nil, apperrors.ErrInvalidCookingTime
	}
	for _, line := range input.Ingredients {
		if line.Amount < 1 {
			return nil, nil, apperrors.ErrInvalidAmount
		}
	}

	tags, err := s.tagRepo.FindBySlugs(ctx, input.TagSlugs)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve tags: %w", err)
	}
	if len(tags) != len(input.TagSlugs) {
		return nil, nil, apperrors.ErrTagNotFound
	}

	ids := make([]uint, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		ids = append(ids, line.ID)
	}
	ingredients, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve ingredients: %w", err)
	}
	byID := make(map[uint]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	lines := make([]model.RecipeIngredient, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		ing, ok := byID[line.ID]
		if !ok {
			return nil, nil, apperrors.ErrIngredientNotFound
		}
		lines = append(lines, model.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       line.Amount,
			Ingredient:   ing,
		})
	}
	return tags, lines, nil
}

// Create validates, stores the image and inserts the recipe with its
// tag links and ingredient lines.
func (s *recipeService) Create(ctx context.Context, authorID uint, input RecipeInput) (*model.Recipe, error) {
	if authorID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	tags, lines, err := s.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	imagePath, err := s.images.SaveBase64(input.ImageBase64)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Image:       imagePath,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		Tags:        tags,
		Ingredients: lines,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		_ = s.images.Remove(imagePath)
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return s.Get(ctx, recipe.ID)
}

// Update replaces the recipe's fields, tag set and ingredient lines.
// Only the author may update; a new image replaces the stored one.
func (s *recipeService) Update(ctx context.Context, userID, recipeID uint, input RecipeInput) (*model.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, apperrors.ErrNotAuthor
	}

	tags, lines, err := s.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	if input.ImageBase64 != "" {
		imagePath, err := s.images.SaveBase64(input.ImageBase64)
		if err != nil {
			return nil, err
		}
		recipe.Image = imagePath
	}

	recipe.Name = input.Name
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	if err := s.recipeRepo.Update(ctx, recipe, tags, lines); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if input.ImageBase64 != "" && oldImage != recipe.Image {
		_ = s.images.Remove(oldImage)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(recipeID))
	return s.Get(ctx, recipeID)
}

// Delete removes the recipe with its dependent rows and stored image.
// Only the author may delete.
func (s *recipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return apperrors.ErrNotAuthor
	}
	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecipeNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	_ = s.images.Remove(recipe.Image)
	_ = s.cache.Delete(ctx, s.cacheKey(recipeID))
	return nil
}

// Get retrieves a recipe by ID with caching.
func (s *recipeService) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	recipe, err := s.findRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(recipe); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, recipeCacheTTL)
	}
	return recipe, nil
}

// List returns one filtered page of recipes plus the total count.
func (s *recipeService) List(ctx context.Context, filter repository.RecipeFilter) ([]model.Recipe, int64, error) {
	return s.recipeRepo.List(ctx, filter)
}

// Favorite marks the recipe for the user; a duplicate is a conflict.
func (s *recipeService) Favorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.checkTogglePreconditions(ctx, userID, recipeID); err != nil {
		return err
	}
	exists, err := s.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return apperrors.ErrAlreadyFavorited
	}
	err = s.favoriteRepo.Create(ctx, &model.Favorite{UserID: userID, RecipeID: recipeID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyFavorited
	}
	return err
}

// Unfavorite removes the marking; a missing pair is not-found.
func (s *recipeService) Unfavorite(ctx context.Context, userID, recipeID uint) error {
	if err := s.checkTogglePreconditions(ctx, userID, recipeID); err != nil {
		return err
	}
	deleted, err := s.favoriteRepo.Delete(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if !deleted {
		return apperrors.ErrFavoriteNotFound
	}
	return nil
}

// AddToCart puts the recipe in the user's cart; a duplicate is a conflict.
func (s *recipeService) AddToCart(ctx context.Context, userID, recipeID uint) error {
	if err := s.checkTogglePreconditions(ctx, userID, recipeID); err != nil {
		return err
	}
	exists, err := s.cartRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("check cart: %w", err)
	}
	if exists {
		return apperrors.ErrAlreadyInCart
	}
	err = s.cartRepo.Create(ctx, &model.ShoppingCart{UserID: userID, RecipeID: recipeID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyInCart
	}
	return err
}

// RemoveFromCart removes the entry; a missing pair is not-found.
func (s *recipeService) RemoveFromCart(ctx context.Context, userID, recipeID uint) error {
	if err := s.checkTogglePreconditions(ctx, userID, recipeID); err != nil {
		return err
	}
	deleted, err := s.cartRepo.Delete(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete cart entry: %w", err)
	}
	if !deleted {
		return apperrors.ErrCartEntryNotFound
	}
	return nil
}

func (s *recipeService) checkTogglePreconditions(ctx context.Context, userID, recipeID uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	_, err := s.findRecipe(ctx, recipeID)
	return err
}

func (s *recipeService) findRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}
