package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jedzonko/recipes-api/internal/core/domain"
	"github.com/jedzonko/recipes-api/internal/core/ports"
)

type searchService struct {
	recipeRepo ports.RecipeRepository
	ratingSvc  ports.RatingService
}

func NewSearchService(recipeRepo ports.RecipeRepository, ratingSvc ports.RatingService) ports.SearchService {
	return &searchService{
		recipeRepo: recipeRepo,
		ratingSvc:  ratingSvc,
	}
}

// Search filters recipes by a case-insensitive substring match against
// the title or any tag and orders the result by the requested key.
// An empty sort key keeps store-native order; an unrecognized one is
// silently ignored and the matches come back unsorted. Sorting by rating
// refreshes each matched recipe's rating cache first, one aggregator
// call per recipe.
func (s *searchService) Search(ctx context.Context, query, sortKey, direction string) ([]*domain.Recipe, error) {
	query = strings.ToLower(query)
	sortKey = strings.ToLower(sortKey)
	direction = strings.ToLower(direction)

	recipes, err := s.recipeRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}

	var less func(a, b *domain.Recipe) bool
	switch sortKey {
	case "title":
		less = func(a, b *domain.Recipe) bool { return a.Title < b.Title }
	case "creationdate":
		less = func(a, b *domain.Recipe) bool {
			return parseCreationDate(a.CreationDate).Before(parseCreationDate(b.CreationDate))
		}
	case "rating":
		for _, recipe := range recipes {
			avg, err := s.ratingSvc.AverageFor(ctx, recipe.ID)
			if err != nil {
				return nil, err
			}
			recipe.Rating = avg
		}
		less = func(a, b *domain.Recipe) bool { return a.Rating < b.Rating }
	}

	if less == nil {
		return recipes, nil
	}

	if direction == "desc" {
		asc := less
		less = func(a, b *domain.Recipe) bool { return asc(b, a) }
	}

	// Stable: equal keys keep their store-native relative order.
	sort.SliceStable(recipes, func(i, j int) bool { return less(recipes[i], recipes[j]) })

	return recipes, nil
}

func parseCreationDate(value string) time.Time {
	t, err := time.Parse(domain.TimeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
