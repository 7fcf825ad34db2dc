package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/cli"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/services"
	"gorm.io/gorm"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(func(_ *gorm.DB, settings config.Database) error {
				fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", settings.DSNForLog())
				return nil
			})
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	var generate bool

	command := &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Replace a user's password",
		Long:  "Replace a user's password with one typed at the prompt, or with a generated one printed once.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(database *gorm.DB, _ config.Database) error {
				repositories := db.NewRepositories(database)
				return cli.RunResetPassword(cmd.Context(), services.NewAuthService(repositories.Users), cli.ResetPasswordOptions{
					Username: args[0],
					Generate: generate,
					In:       cmd.InOrStdin(),
					Out:      cmd.OutOrStdout(),
				})
			})
		},
	}
	command.Flags().BoolVar(&generate, "generate", false, "generate a random password instead of prompting")
	return command
}

func newRecipesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes [query]",
		Short: "List suitable recipes, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withDatabase(func(database *gorm.DB, _ config.Database) error {
				repositories := db.NewRepositories(database)
				return cli.RunListRecipes(cmd.Context(), services.NewRecipeService(repositories.Recipes), query, cmd.OutOrStdout())
			})
		},
	}
}

// withDatabase opens the configured database, which also applies pending
// migrations, and closes it once fn returns.
func withDatabase(fn func(database *gorm.DB, settings config.Database) error) error {
	settings, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	database, err := db.Open(settings)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	return fn(database, settings)
}
