package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	planUC "github.com/fitmo-inc/fitmo/internal/application/plan/usecases"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/cache"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/config"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/database"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/repository"
	"github.com/fitmo-inc/fitmo/internal/shared/biztime"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-plans",
		Short: "Seed the subscription plan catalog",
		Long:  `Insert the built-in subscription plans. Plans that already exist are skipped, so the command is safe to re-run.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Billing.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewPlanRepository(database.Get(), logger.NewLogger())
	seedUC := planUC.NewSeedPlansUseCase(planRepo, cache.NewNoopPlanCache(), logger.NewLogger())

	result, err := seedUC.Execute(context.Background())
	if err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	fmt.Printf("\nPlan Seeding:\n")
	fmt.Printf("  Created: %d %v\n", len(result.Created), result.Created)
	fmt.Printf("  Skipped: %d %v\n", len(result.Skipped), result.Skipped)

	return nil
}
