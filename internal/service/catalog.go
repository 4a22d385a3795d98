package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/repository"
)

// hexColorPattern accepts #RRGGBB or #RGB.
var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// ErrCatalogConflict is returned when creating a tag or ingredient that
// collides with an existing unique value.
var ErrCatalogConflict = errors.New("catalog entry already exists")

// CatalogService serves tag and ingredient reference data.
type CatalogService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	ListIngredients(ctx context.Context, namePrefix string, offset, limit int) ([]model.Ingredient, int64, error)
	GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error
}

type catalogService struct {
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(tagRepo repository.TagRepository, ingredientRepo repository.IngredientRepository) CatalogService {
	return &catalogService{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (s *catalogService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *catalogService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return tag, nil
}

func (s *catalogService) CreateTag(ctx context.Context, tag *model.Tag) error {
	if !hexColorPattern.MatchString(tag.Color) {
		return apperrors.ErrInvalidColor
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCatalogConflict
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (s *catalogService) ListIngredients(ctx context.Context, namePrefix string, offset, limit int) ([]model.Ingredient, int64, error) {
	return s.ingredientRepo.List(ctx, namePrefix, offset, limit)
}

func (s *catalogService) GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, ingredient *model.Ingredient) error {
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCatalogConflict
		}
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}
