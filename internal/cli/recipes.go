package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/terraincognita07/wellnest/internal/models"
)

type RecipeSearcher interface {
	Search(ctx context.Context, rawQuery string) ([]models.Recipe, string, error)
}

// RunListRecipes prints the suitable recipes matching query as a table.
func RunListRecipes(ctx context.Context, searcher RecipeSearcher, query string, out io.Writer) error {
	recipes, _, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}
	RenderRecipesTable(out, recipes)
	return nil
}

func RenderRecipesTable(out io.Writer, recipes []models.Recipe) {
	writer := table.NewWriter()
	writer.SetOutputMirror(out)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"ID", "Title", "Tag", "Difficulty", "Prep (min)"})

	for _, recipe := range recipes {
		writer.AppendRow(table.Row{
			recipe.ID,
			recipe.Title,
			recipe.MainTag,
			optionalText(recipe.Difficulty),
			optionalMinutes(recipe.PrepMinutes),
		})
	}
	writer.AppendFooter(table.Row{"", "", "", "Total", len(recipes)})
	writer.Render()
}

func optionalText(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}

func optionalMinutes(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}
