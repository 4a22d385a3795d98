package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when an anonymous requester attempts an
	// identity-scoped operation.
	ErrUnauthorized = errors.New("authentication required")
	// ErrUserBlocked is returned when a blocked user attempts a write.
	ErrUserBlocked = errors.New("user is blocked")
	// ErrNotAuthor is returned when a user mutates a recipe they do not own.
	ErrNotAuthor = errors.New("only the author can modify this recipe")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipeNotFound is returned when a recipe is not found.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrTagNotFound is returned when a tag is not found.
	ErrTagNotFound = errors.New("tag not found")
	// ErrIngredientNotFound is returned when an ingredient is not found.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrFavoriteNotFound is returned when deleting a favorite that does not exist.
	ErrFavoriteNotFound = errors.New("recipe is not in favorites")
	// ErrCartEntryNotFound is returned when deleting a cart entry that does not exist.
	ErrCartEntryNotFound = errors.New("recipe is not in the shopping cart")
	// ErrSubscriptionNotFound is returned when deleting a subscription that does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrAlreadyFavorited is returned when favoriting an already favorited recipe.
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	// ErrAlreadyInCart is returned when adding a recipe already in the cart.
	ErrAlreadyInCart = errors.New("recipe is already in the shopping cart")
	// ErrAlreadySubscribed is returned when subscribing to an already followed author.
	ErrAlreadySubscribed = errors.New("already subscribed to this author")

	// ErrSelfSubscription is returned when a user tries to follow themselves.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")
	// ErrInvalidCookingTime is returned when cooking time is below one minute.
	ErrInvalidCookingTime = errors.New("cooking time must be at least one minute")
	// ErrInvalidAmount is returned when an ingredient amount is not positive.
	ErrInvalidAmount = errors.New("ingredient amount must be positive")
	// ErrInvalidColor is returned when a tag color is not a valid HEX code.
	ErrInvalidColor = errors.New("color must be a HEX code like #RRGGBB")
	// ErrInvalidImage is returned when an uploaded image is missing or not
	// a decodable base64 data URI.
	ErrInvalidImage = errors.New("image must be a base64 data URI")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Each error kind
// keeps a stable status and code so clients can branch on them.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrUserBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BLOCKED")
	case errors.Is(err, ErrNotAuthor):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_AUTHOR")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrIngredientNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case errors.Is(err, ErrFavoriteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "FAVORITE_NOT_FOUND")
	case errors.Is(err, ErrCartEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CART_ENTRY_NOT_FOUND")
	case errors.Is(err, ErrSubscriptionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUBSCRIPTION_NOT_FOUND")
	case errors.Is(err, ErrAlreadyFavorited):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_FAVORITED")
	case errors.Is(err, ErrAlreadyInCart):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_IN_CART")
	case errors.Is(err, ErrAlreadySubscribed):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_SUBSCRIBED")
	case errors.Is(err, ErrSelfSubscription):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_SUBSCRIPTION")
	case errors.Is(err, ErrInvalidCookingTime):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COOKING_TIME")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidColor):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_COLOR")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
