package repository

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/model"
)

// RecipeFilter narrows recipe listings. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    uint
	TagSlug     string
	Name        string // substring match
	FavoritedBy uint   // user id whose favorites to restrict to
	InCartOf    uint   // user id whose shopping cart to restrict to
	Offset      int
	Limit       int
}

// RecipeRepository defines recipe persistence operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]model.Recipe, int64, error)
	ListRecentByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create inserts the recipe together with its tag links and ingredient
// lines in one transaction.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
}

// Update saves scalar fields and replaces the tag set and ingredient
// lines atomically.
func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe, tags []model.Tag, lines []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].RecipeID = recipe.ID
		}
		if len(lines) == 0 {
			return nil
		}
		return tx.Create(&lines).Error
	})
}

// Delete removes the recipe and cascades to its ingredient lines,
// favorites, cart entries and tag links in one transaction. The cascade
// order runs leaf rows first so no dangling references survive a
// partial failure.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindByID loads a recipe with its author, tags and ingredient lines.
func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) applyFilter(db *gorm.DB, f RecipeFilter) *gorm.DB {
	q := db.Model(&model.Recipe{})
	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.Name != "" {
		q = q.Where("recipes.name LIKE ?", "%"+f.Name+"%")
	}
	if f.TagSlug != "" {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.FavoritedBy != 0 {
		q = q.Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", f.FavoritedBy)
	}
	if f.InCartOf != 0 {
		q = q.Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id").
			Where("shopping_carts.user_id = ?", f.InCartOf)
	}
	return q
}

// List returns a page of recipes, newest first, with the total count
// before pagination.
func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]model.Recipe, int64, error) {
	var total int64
	countQ := r.applyFilter(r.db.WithContext(ctx), filter)
	if err := countQ.Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	q := r.applyFilter(r.db.WithContext(ctx), filter).
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.id DESC")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ListRecentByAuthor returns the author's newest recipes, capped at limit.
func (r *recipeRepository) ListRecentByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthor returns the author's total recipe count.
func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
