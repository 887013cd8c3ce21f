package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fitmo-inc/fitmo/internal/interfaces/cli/migrate"
	"github.com/fitmo-inc/fitmo/internal/interfaces/cli/seed"
	"github.com/fitmo-inc/fitmo/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitmo",
		Short: "Fitmo - trainer marketplace billing service",
		Long:  `Fitmo runs the subscription, seat and commission billing backend for the trainer marketplace, with built-in migration and seeding tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
