package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/wellnest/internal/config"
)

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Printf("wellnest: %v", err)
		stop()
		os.Exit(1)
	}
}

// newRootCommand serves the web app when no subcommand is given.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "wellnest",
		Short:         "Wellnest daily wellness check-ins",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newResetPasswordCommand(),
		newRecipesCommand(),
	)
	return root
}
