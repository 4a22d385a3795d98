package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodgram/internal/auth"
	"foodgram/internal/model"
	"foodgram/internal/pagination"
	"foodgram/internal/repository"
	"foodgram/internal/service"
)

// RecipeHandler handles recipe endpoints, the favorite/cart toggles and
// the shopping list download.
type RecipeHandler struct {
	recipeService   service.RecipeService
	annotator       service.Annotator
	userService     service.UserService
	shoppingService service.ShoppingListService
	pageSize        int
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(
	recipeService service.RecipeService,
	annotator service.Annotator,
	userService service.UserService,
	shoppingService service.ShoppingListService,
	pageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		annotator:       annotator,
		userService:     userService,
		shoppingService: shoppingService,
		pageSize:        pageSize,
	}
}

// RecipeRequest represents a recipe create/update request.
type RecipeRequest struct {
	Name        string                     `json:"name" validate:"required,max=200"`
	Text        string                     `json:"text" validate:"required"`
	CookingTime int                        `json:"cooking_time" validate:"required"`
	Image       string                     `json:"image"`
	Tags        []string                   `json:"tags"`
	Ingredients []service.IngredientAmount `json:"ingredients" validate:"dive"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		ImageBase64: r.Image,
		TagSlugs:    r.Tags,
		Ingredients: r.Ingredients,
	}
}

// render shapes a batch of recipes for the requesting user: favorite
// and cart flags from the annotator, author is_subscribed from the
// subscription set. Both are batch queries, not per-recipe lookups.
func (h *RecipeHandler) render(c echo.Context, recipes []model.Recipe) ([]RecipeResponse, error) {
	requesterID := auth.CurrentUserID(c)
	ctx := c.Request().Context()

	flags, err := h.annotator.Annotate(ctx, requesterID, recipes)
	if err != nil {
		return nil, err
	}

	authors := make([]model.User, 0, len(recipes))
	seen := make(map[uint]struct{}, len(recipes))
	for _, recipe := range recipes {
		if _, ok := seen[recipe.AuthorID]; !ok {
			seen[recipe.AuthorID] = struct{}{}
			authors = append(authors, recipe.Author)
		}
	}
	subscribed, err := h.userService.AnnotateSubscribed(ctx, requesterID, authors)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, newRecipeResponse(recipe, flags[recipe.ID], subscribed[recipe.AuthorID]))
	}
	return out, nil
}

// List godoc
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param author query int false "Filter by author id"
// @Param name query string false "Filter by name substring"
// @Param tags query string false "Filter by tag slug"
// @Param is_favorited query bool false "Only the requester's favorites"
// @Param is_in_shopping_cart query bool false "Only the requester's cart"
// @Success 200 {object} pagination.Page
// @Failure 500 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	requesterID := auth.CurrentUserID(c)
	params := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), h.pageSize)

	filter := repository.RecipeFilter{
		TagSlug: c.QueryParam("tags"),
		Name:    c.QueryParam("name"),
		Offset:  params.Offset(),
		Limit:   params.Limit,
	}
	if v, err := strconv.ParseUint(c.QueryParam("author"), 10, 64); err == nil {
		filter.AuthorID = uint(v)
	}
	// The flag filters are identity-scoped; anonymous requesters get the
	// unfiltered listing, as flags are uniformly false for them.
	if requesterID != 0 {
		if v, _ := strconv.ParseBool(c.QueryParam("is_favorited")); v {
			filter.FavoritedBy = requesterID
		}
		if v, _ := strconv.ParseBool(c.QueryParam("is_in_shopping_cart")); v {
			filter.InCartOf = requesterID
		}
	}

	recipes, total, err := h.recipeService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(err)
	}
	results, err := h.render(c, recipes)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewPage(c.Request().URL, params, total, results))
}

// Get godoc
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	recipe, err := h.recipeService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	results, err := h.render(c, []model.Recipe{*recipe})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, results[0])
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecipeRequest true "Recipe data"
// @Success 201 {object} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), auth.CurrentUserID(c), req.toInput())
	if err != nil {
		return respondError(err)
	}
	results, err := h.render(c, []model.Recipe{*recipe})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, results[0])
}

// Update godoc
// @Summary Update a recipe (author only)
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body RecipeRequest true "Recipe data"
// @Success 200 {object} RecipeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), auth.CurrentUserID(c), id, req.toInput())
	if err != nil {
		return respondError(err)
	}
	results, err := h.render(c, []model.Recipe{*recipe})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, results[0])
}

// Delete godoc
// @Summary Delete a recipe (author only)
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.recipeService.Delete(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Favorite godoc
// @Summary Add a recipe to favorites
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /recipes/{id}/favorite [post]
func (h *RecipeHandler) Favorite(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.recipeService.Favorite(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// Unfavorite godoc
// @Summary Remove a recipe from favorites
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/favorite [delete]
func (h *RecipeHandler) Unfavorite(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.recipeService.Unfavorite(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddToCart godoc
// @Summary Add a recipe to the shopping cart
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 201
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) AddToCart(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.recipeService.AddToCart(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// RemoveFromCart godoc
// @Summary Remove a recipe from the shopping cart
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/shopping_cart [delete]
func (h *RecipeHandler) RemoveFromCart(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.recipeService.RemoveFromCart(c.Request().Context(), auth.CurrentUserID(c), id); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DownloadShoppingCart godoc
// @Summary Download the aggregated shopping list
// @Tags recipes
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "text report"
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	report, err := h.shoppingService.BuildReport(c.Request().Context(), auth.CurrentUserID(c))
	if err != nil {
		return respondError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shopping_cart.txt"`)
	return c.String(http.StatusOK, report)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
