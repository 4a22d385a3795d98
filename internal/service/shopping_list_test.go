package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "foodgram/internal/errors"
	"foodgram/internal/model"
)

func cartEntry(recipeID uint, lines ...model.RecipeIngredient) model.ShoppingCart {
	return model.ShoppingCart{
		UserID:   7,
		RecipeID: recipeID,
		Recipe:   model.Recipe{ID: recipeID, Ingredients: lines},
	}
}

func ingredientLine(name, unit string, amount int) model.RecipeIngredient {
	return model.RecipeIngredient{
		Amount:     amount,
		Ingredient: model.Ingredient{Name: name, MeasurementUnit: unit},
	}
}

func TestShoppingListService_BuildReport(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.ShoppingCart
		want    string
	}{
		{
			name:    "empty cart yields empty report",
			entries: []model.ShoppingCart{},
			want:    "",
		},
		{
			name: "single recipe",
			entries: []model.ShoppingCart{
				cartEntry(1, ingredientLine("Salt", "g", 5)),
			},
			want: "Salt: 5 g",
		},
		{
			name: "same ingredient across recipes is summed",
			entries: []model.ShoppingCart{
				cartEntry(1, ingredientLine("Salt", "g", 5)),
				cartEntry(2, ingredientLine("Salt", "g", 10)),
			},
			want: "Salt: 15 g",
		},
		{
			name: "same name with different units stays separate",
			entries: []model.ShoppingCart{
				cartEntry(1, ingredientLine("Milk", "ml", 200)),
				cartEntry(2, ingredientLine("Milk", "cup", 1)),
			},
			want: "Milk: 1 cup\nMilk: 200 ml",
		},
		{
			name: "lines sorted by name then unit",
			entries: []model.ShoppingCart{
				cartEntry(1,
					ingredientLine("Sugar", "g", 50),
					ingredientLine("Flour", "g", 150),
				),
				cartEntry(2, ingredientLine("Flour", "g", 50)),
			},
			want: "Flour: 200 g\nSugar: 50 g",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartRepo := new(MockCartRepository)
			cartRepo.On("ListByUser", mock.Anything, uint(7)).Return(tt.entries, nil)
			svc := NewShoppingListService(cartRepo)

			report, err := svc.BuildReport(context.Background(), 7)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, report)
			cartRepo.AssertExpectations(t)
		})
	}
}

func TestShoppingListService_BuildReport_Deterministic(t *testing.T) {
	entries := []model.ShoppingCart{
		cartEntry(1,
			ingredientLine("Onion", "pcs", 2),
			ingredientLine("Butter", "g", 30),
			ingredientLine("Carrot", "pcs", 3),
		),
	}
	cartRepo := new(MockCartRepository)
	cartRepo.On("ListByUser", mock.Anything, uint(7)).Return(entries, nil)
	svc := NewShoppingListService(cartRepo)

	first, err := svc.BuildReport(context.Background(), 7)
	assert.NoError(t, err)
	second, err := svc.BuildReport(context.Background(), 7)
	assert.NoError(t, err)

	assert.Equal(t, "Butter: 30 g\nCarrot: 3 pcs\nOnion: 2 pcs", first)
	assert.Equal(t, first, second)
}

func TestShoppingListService_BuildReport_Anonymous(t *testing.T) {
	cartRepo := new(MockCartRepository)
	svc := NewShoppingListService(cartRepo)

	_, err := svc.BuildReport(context.Background(), 0)

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	cartRepo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestShoppingListService_BuildReport_RepoError(t *testing.T) {
	cartRepo := new(MockCartRepository)
	cartRepo.On("ListByUser", mock.Anything, uint(7)).Return(nil, errors.New("db down"))
	svc := NewShoppingListService(cartRepo)

	_, err := svc.BuildReport(context.Background(), 7)

	assert.Error(t, err)
}
