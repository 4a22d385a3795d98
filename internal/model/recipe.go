package model

import "time"

// Recipe is a published recipe owned by exactly one author.
// Listings are ordered newest first (descending id).
type Recipe struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Image       string    `json:"image" gorm:"size:255"` // Path under the media dir
	Text        string    `json:"text" gorm:"type:text"`
	CookingTime int       `json:"cooking_time" gorm:"not null;default:1"` // Minutes, >= 1
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations. These serialize under real keys: the recipe read cache
	// round-trips the model through JSON, and hiding them there would
	// serve cache hits with the nested shape stripped.
	Author      User               `json:"author" gorm:"foreignKey:AuthorID"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient carries the per-recipe quantity of one ingredient.
type RecipeIngredient struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	RecipeID     uint `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `json:"ingredient_id" gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `json:"amount" gorm:"not null"` // Positive integer

	Ingredient Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

// Favorite marks a recipe as personally interesting to a user.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorite_pair"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_favorite_pair"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ShoppingCart marks a recipe the user intends to cook; its ingredient
// lines feed the aggregated shopping list.
type ShoppingCart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cart_pair"`
	RecipeID  uint      `json:"recipe_id" gorm:"not null;index;uniqueIndex:idx_cart_pair"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
