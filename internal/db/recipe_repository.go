package db

import (
	"context"
	"strings"

	"github.com/terraincognita07/wellnest/internal/models"
	"gorm.io/gorm"
)

const recipeSearchCondition = `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(summary) LIKE ? ESCAPE '\' OR LOWER(main_tag) LIKE ? ESCAPE '\')`

var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type RecipeRepository struct {
	database *gorm.DB
}

func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{database: database}
}

// ListSuitable returns every suitable recipe, newest first.
func (repo *RecipeRepository) ListSuitable(ctx context.Context) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := repo.database.WithContext(ctx).
		Where("is_suitable = ?", true).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchSuitable matches term as a case-insensitive substring of title,
// summary or main_tag. LIKE wildcards in term are matched literally.
func (repo *RecipeRepository) SearchSuitable(ctx context.Context, term string) ([]models.Recipe, error) {
	pattern := "%" + likePatternEscaper.Replace(strings.ToLower(term)) + "%"

	recipes := make([]models.Recipe, 0)
	if err := repo.database.WithContext(ctx).
		Where("is_suitable = ?", true).
		Where(recipeSearchCondition, pattern, pattern, pattern).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
