package service

import (
	"context"
	"fmt"

	"foodgram/internal/model"
	"foodgram/internal/repository"
)

// RecipeFlags are the per-requester booleans attached to every recipe
// in a listing. They are derived on each request, never stored.
type RecipeFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}

// Annotator computes favorite/cart flags for a batch of recipes as seen
// by one requester.
type Annotator interface {
	Annotate(ctx context.Context, requesterID uint, recipes []model.Recipe) (map[uint]RecipeFlags, error)
}

type annotator struct {
	favoriteRepo repository.FavoriteRepository
	cartRepo     repository.CartRepository
}

// NewAnnotator creates a new recipe annotator.
func NewAnnotator(favoriteRepo repository.FavoriteRepository, cartRepo repository.CartRepository) Annotator {
	return &annotator{
		favoriteRepo: favoriteRepo,
		cartRepo:     cartRepo,
	}
}

// Annotate returns flags keyed by recipe id. An anonymous requester
// (id 0) gets all-false flags without touching the store. For an
// authenticated requester the flags come from one set-membership query
// per relation, so cost scales with the batch and the requester's own
// rows rather than their product.
func (a *annotator) Annotate(ctx context.Context, requesterID uint, recipes []model.Recipe) (map[uint]RecipeFlags, error) {
	flags := make(map[uint]RecipeFlags, len(recipes))
	if requesterID == 0 {
		for _, r := range recipes {
			flags[r.ID] = RecipeFlags{}
		}
		return flags, nil
	}

	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	favorited, err := a.favoriteRepo.RecipeIDSet(ctx, requesterID, ids)
	if err != nil {
		return nil, fmt.Errorf("load favorite set: %w", err)
	}
	inCart, err := a.cartRepo.RecipeIDSet(ctx, requesterID, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart set: %w", err)
	}

	for _, r := range recipes {
		_, fav := favorited[r.ID]
		_, cart := inCart[r.ID]
		flags[r.ID] = RecipeFlags{IsFavorited: fav, IsInShoppingCart: cart}
	}
	return flags, nil
}
