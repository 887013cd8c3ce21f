package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanModel{},
		&models.TrainerSubscriptionModel{},
		&models.OrganizationModel{},
		&models.InvitationModel{},
		&models.SeatOverageModel{},
		&models.BillingSubscriptionModel{},
		&models.InvoiceModel{},
		&models.BookingModel{},
	}
}

// GormAutoMigrateStrategy migrates the schema straight from the model
// structs. Development only; versioned scripts own the schema elsewhere.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm-automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AutoMigrateModels()
	}

	s.logger.Infow("starting gorm auto-migration", "models_count", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	s.logger.Infow("auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
