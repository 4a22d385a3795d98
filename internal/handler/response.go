package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/service"
)

// UserResponse is the public user shape; is_subscribed reflects the
// requesting user and is false for anonymous requests.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// TagResponse mirrors the tag reference row.
type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientLineResponse is one ingredient of a recipe with its amount.
type IngredientLineResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full nested recipe shape used by listings and
// detail reads.
type RecipeResponse struct {
	ID               uint                     `json:"id"`
	Tags             []TagResponse            `json:"tags"`
	Author           UserResponse             `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// RecipeSummary is the compact recipe shape used in subscription feeds.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is one followed author with a capped recipe
// preview and the uncapped recipe count.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

func newUserResponse(user model.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func newTagResponse(tag model.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug}
}

func newRecipeResponse(recipe model.Recipe, flags service.RecipeFlags, authorSubscribed bool) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, newTagResponse(tag))
	}
	lines := make([]IngredientLineResponse, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		lines = append(lines, IngredientLineResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}
	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(recipe.Author, authorSubscribed),
		Ingredients:      lines,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func newRecipeSummary(recipe model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

func newSubscriptionResponse(item service.FeedItem) SubscriptionResponse {
	previews := make([]RecipeSummary, 0, len(item.Recipes))
	for _, recipe := range item.Recipes {
		previews = append(previews, newRecipeSummary(recipe))
	}
	return SubscriptionResponse{
		// The feed lists the requester's own subscriptions, so
		// is_subscribed is true by definition.
		UserResponse: newUserResponse(item.Author, true),
		Recipes:      previews,
		RecipesCount: item.RecipesCount,
	}
}

// respondError maps a domain error to its stable HTTP shape.
func respondError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
