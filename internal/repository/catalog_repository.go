package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	FirstOrCreate(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, id uint) (*model.Tag, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Tag, error)
	List(ctx context.Context) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) FirstOrCreate(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).
		Where("slug = ?", tag.Slug).
		FirstOrCreate(tag).Error
}

func (r *tagRepository) FindByID(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindBySlugs returns the tags matching the given slugs; missing slugs
// simply yield a shorter result, the caller decides whether that is an error.
func (r *tagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Tag, error) {
	var tags []model.Tag
	if len(slugs) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// IngredientRepository defines ingredient reference-data operations.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	FirstOrCreate(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, id uint) (*model.Ingredient, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error)
	List(ctx context.Context, namePrefix string, offset, limit int) ([]model.Ingredient, int64, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) FirstOrCreate(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", ingredient.Name, ingredient.MeasurementUnit).
		FirstOrCreate(ingredient).Error
}

func (r *ingredientRepository) FindByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// List returns ingredients ordered by name, optionally restricted to a
// name prefix, with the total count before pagination.
func (r *ingredientRepository) List(ctx context.Context, namePrefix string, offset, limit int) ([]model.Ingredient, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingredient{})
	if namePrefix != "" {
		q = q.Where("name LIKE ?", namePrefix+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ingredients []model.Ingredient
	if err := q.Order("name").Offset(offset).Limit(limit).Find(&ingredients).Error; err != nil {
		return nil, 0, err
	}
	return ingredients, total, nil
}
