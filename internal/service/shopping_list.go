package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/repository"
)

// ShoppingListService flattens the requester's cart into an aggregated
// ingredients report.
type ShoppingListService interface {
	BuildReport(ctx context.Context, userID uint) (string, error)
}

type shoppingListService struct {
	cartRepo repository.CartRepository
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(cartRepo repository.CartRepository) ShoppingListService {
	return &shoppingListService{cartRepo: cartRepo}
}

type ingredientKey struct {
	Name string
	Unit string
}

// BuildReport sums ingredient amounts across every recipe in the
// user's cart, grouped by (name, measurement unit), and renders one
// "{name}: {total} {unit}" line per group, sorted ascending by name
// then unit. An empty cart yields an empty report; an anonymous
// requester is an authorization error.
//
// The cart and its recipes are read without a transaction, so a cart
// mutated mid-read can produce a report for a state that never durably
// existed. That matches the store's contract here: the report is a
// convenience snapshot, not a ledger.
func (s *shoppingListService) BuildReport(ctx context.Context, userID uint) (string, error) {
	if userID == 0 {
		return "", apperrors.ErrUnauthorized
	}

	entries, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load shopping cart: %w", err)
	}

	totals := make(map[ingredientKey]int)
	for _, entry := range entries {
		for _, line := range entry.Recipe.Ingredients {
			key := ingredientKey{
				Name: line.Ingredient.Name,
				Unit: line.Ingredient.MeasurementUnit,
			}
			totals[key] += line.Amount
		}
	}

	keys := make([]ingredientKey, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Unit < keys[j].Unit
	})

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d %s", key.Name, totals[key], key.Unit))
	}
	return strings.Join(lines, "\n"), nil
}
