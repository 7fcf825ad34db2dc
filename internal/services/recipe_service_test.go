package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/wellnest/internal/models"
)

type stubRecipeRepository struct {
	listed   bool
	searched string
	err      error
}

func (repo *stubRecipeRepository) ListSuitable(context.Context) ([]models.Recipe, error) {
	repo.listed = true
	return []models.Recipe{{ID: 1, Title: "Oats", IsSuitable: true}}, repo.err
}

func (repo *stubRecipeRepository) SearchSuitable(_ context.Context, term string) ([]models.Recipe, error) {
	repo.searched = term
	return nil, repo.err
}

func TestRecipeServiceBlankQueryListsAll(t *testing.T) {
	t.Parallel()

	repo := &stubRecipeRepository{}
	recipes, query, err := NewRecipeService(repo).Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !repo.listed || repo.searched != "" {
		t.Fatalf("expected blank query to list all recipes, listed=%v searched=%q", repo.listed, repo.searched)
	}
	if query != "" || len(recipes) != 1 {
		t.Fatalf("unexpected result query=%q recipes=%d", query, len(recipes))
	}
}

func TestRecipeServiceTrimsAndCapsQuery(t *testing.T) {
	t.Parallel()

	repo := &stubRecipeRepository{}
	service := NewRecipeService(repo)

	if _, query, _ := service.Search(context.Background(), "  oats "); query != "oats" || repo.searched != "oats" {
		t.Fatalf("expected trimmed query, got %q / %q", query, repo.searched)
	}

	long := strings.Repeat("ä", MaxRecipeQueryLength+20)
	if _, query, _ := service.Search(context.Background(), long); len([]rune(query)) != MaxRecipeQueryLength {
		t.Fatalf("expected query capped to %d runes, got %d", MaxRecipeQueryLength, len([]rune(query)))
	}
}

func TestRecipeServiceWrapsErrors(t *testing.T) {
	t.Parallel()

	failure := errors.New("no such table: recipes")
	if _, _, err := NewRecipeService(&stubRecipeRepository{err: failure}).Search(context.Background(), "x"); !errors.Is(err, failure) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
