package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/wellnest/internal/models"
)

const MaxRecipeQueryLength = 100

type RecipeRepository interface {
	ListSuitable(ctx context.Context) ([]models.Recipe, error)
	SearchSuitable(ctx context.Context, term string) ([]models.Recipe, error)
}

type RecipeService struct {
	recipes RecipeRepository
}

func NewRecipeService(recipes RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

// NormalizeRecipeQuery trims raw and caps it at MaxRecipeQueryLength runes.
func NormalizeRecipeQuery(raw string) string {
	query := strings.TrimSpace(raw)
	runes := []rune(query)
	if len(runes) > MaxRecipeQueryLength {
		query = strings.TrimSpace(string(runes[:MaxRecipeQueryLength]))
	}
	return query
}

// Search lists suitable recipes, filtered by query when it is not blank.
func (service *RecipeService) Search(ctx context.Context, rawQuery string) ([]models.Recipe, string, error) {
	query := NormalizeRecipeQuery(rawQuery)

	var (
		recipes []models.Recipe
		err     error
	)
	if query == "" {
		recipes, err = service.recipes.ListSuitable(ctx)
	} else {
		recipes, err = service.recipes.SearchSuitable(ctx, query)
	}
	if err != nil {
		return nil, query, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, query, nil
}
