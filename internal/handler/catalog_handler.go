package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/pagination"
	"foodgram/internal/service"
)

// CatalogHandler serves tag and ingredient reference data.
type CatalogHandler struct {
	catalogService service.CatalogService
	pageSize       int
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService, pageSize int) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		pageSize:       pageSize,
	}
}

// TagRequest represents a tag creation request.
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

// IngredientRequest represents an ingredient creation request.
type IngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
}

// ListTags godoc
// @Summary List tags
// @Tags catalog
// @Produce json
// @Success 200 {array} TagResponse
// @Router /tags [get]
func (h *CatalogHandler) ListTags(c echo.Context) error {
	tags, err := h.catalogService.ListTags(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	results := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		results = append(results, newTagResponse(tag))
	}
	return c.JSON(http.StatusOK, results)
}

// GetTag godoc
// @Summary Get a tag
// @Tags catalog
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} TagResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [get]
func (h *CatalogHandler) GetTag(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	tag, err := h.catalogService.GetTag(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newTagResponse(*tag))
}

// CreateTag godoc
// @Summary Create a tag
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TagRequest true "Tag data"
// @Success 201 {object} TagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /tags [post]
func (h *CatalogHandler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag := &model.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := h.catalogService.CreateTag(c.Request().Context(), tag); err != nil {
		if errors.Is(err, service.ErrCatalogConflict) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "TAG_ALREADY_EXISTS",
			})
		}
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newTagResponse(*tag))
}

// ListIngredients godoc
// @Summary List ingredients
// @Tags catalog
// @Produce json
// @Param name query string false "Name prefix filter"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page
// @Router /ingredients [get]
func (h *CatalogHandler) ListIngredients(c echo.Context) error {
	params := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), h.pageSize)

	ingredients, total, err := h.catalogService.ListIngredients(
		c.Request().Context(), c.QueryParam("name"), params.Offset(), params.Limit)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewPage(c.Request().URL, params, total, ingredients))
}

// GetIngredient godoc
// @Summary Get an ingredient
// @Tags catalog
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} model.Ingredient
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [get]
func (h *CatalogHandler) GetIngredient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ingredient, err := h.catalogService.GetIngredient(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IngredientRequest true "Ingredient data"
// @Success 201 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /ingredients [post]
func (h *CatalogHandler) CreateIngredient(c echo.Context) error {
	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient := &model.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := h.catalogService.CreateIngredient(c.Request().Context(), ingredient); err != nil {
		if errors.Is(err, service.ErrCatalogConflict) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INGREDIENT_ALREADY_EXISTS",
			})
		}
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, ingredient)
}
