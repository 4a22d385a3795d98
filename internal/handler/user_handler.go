package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram/internal/auth"
	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
	"foodgram/internal/pagination"
	"foodgram/internal/service"
)

// UserHandler handles user profile and subscription endpoints.
type UserHandler struct {
	userService service.UserService
	subService  service.SubscriptionService
	pageSize    int
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, subService service.SubscriptionService, pageSize int) *UserHandler {
	return &UserHandler{
		userService: userService,
		subService:  subService,
		pageSize:    pageSize,
	}
}

// SetPasswordRequest represents a password change request.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	params := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), h.pageSize)

	users, total, err := h.userService.List(c.Request().Context(), params.Offset(), params.Limit)
	if err != nil {
		return respondError(err)
	}

	subscribed, err := h.userService.AnnotateSubscribed(c.Request().Context(), auth.CurrentUserID(c), users)
	if err != nil {
		return respondError(err)
	}

	results := make([]UserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, newUserResponse(user, subscribed[user.ID]))
	}
	return c.JSON(http.StatusOK, pagination.NewPage(c.Request().URL, params, total, results))
}

// Get godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	subscribed, err := h.userService.AnnotateSubscribed(c.Request().Context(), auth.CurrentUserID(c), []model.User{*user})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(*user, subscribed[user.ID]))
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID := auth.CurrentUserID(c)
	if userID == 0 {
		return respondError(apperrors.ErrUnauthorized)
	}
	user, err := h.userService.Get(c.Request().Context(), userID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(*user, false))
}

// SetPassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param request body SetPasswordRequest true "Passwords"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/set_password [post]
func (h *UserHandler) SetPassword(c echo.Context) error {
	var req SetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.userService.SetPassword(c.Request().Context(), auth.CurrentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "WRONG_PASSWORD",
			})
		}
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Subscribe godoc
// @Summary Follow an author
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 201 {object} SubscriptionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id}/subscribe [post]
func (h *UserHandler) Subscribe(c echo.Context) error {
	authorID, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.subService.Subscribe(c.Request().Context(), auth.CurrentUserID(c), authorID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, newSubscriptionResponse(*item))
}

// Unsubscribe godoc
// @Summary Unfollow an author
// @Tags users
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/subscribe [delete]
func (h *UserHandler) Unsubscribe(c echo.Context) error {
	authorID, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.subService.Unsubscribe(c.Request().Context(), auth.CurrentUserID(c), authorID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Subscriptions godoc
// @Summary List followed authors with recipe previews
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} pagination.Page
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/subscriptions [get]
func (h *UserHandler) Subscriptions(c echo.Context) error {
	params := pagination.FromQuery(c.QueryParam("page"), c.QueryParam("limit"), h.pageSize)

	items, total, err := h.subService.Feed(c.Request().Context(), auth.CurrentUserID(c), params.Offset(), params.Limit)
	if err != nil {
		return respondError(err)
	}

	results := make([]SubscriptionResponse, 0, len(items))
	for _, item := range items {
		results = append(results, newSubscriptionResponse(item))
	}
	return c.JSON(http.StatusOK, pagination.NewPage(c.Request().URL, params, total, results))
}
