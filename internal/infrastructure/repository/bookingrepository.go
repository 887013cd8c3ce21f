package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fitmo-inc/fitmo/internal/domain/booking"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type BookingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BookingMapper
	logger logger.Interface
}

func NewBookingRepository(database *gorm.DB, logger logger.Interface) booking.Repository {
	return &BookingRepositoryImpl{
		db:     database,
		mapper: mappers.NewBookingMapper(),
		logger: logger,
	}
}

func (r *BookingRepositoryImpl) GetByID(ctx context.Context, bookingID uint) (*booking.Booking, error) {
	var model models.BookingModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BookingRepositoryImpl) GetBySID(ctx context.Context, sid string) (*booking.Booking, error) {
	var model models.BookingModel
	err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *BookingRepositoryImpl) Update(ctx context.Context, b *booking.Booking) error {
	model, err := r.mapper.ToModel(b)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.BookingModel{}).
		Where("id = ?", b.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update booking", "error", err, "booking_id", b.ID())
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

func (r *BookingRepositoryImpl) ListCompletedByTrainer(ctx context.Context, trainerID uint, start, end *time.Time) ([]*booking.Booking, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("trainer_id = ? AND status = ?", trainerID, booking.StatusCompleted)
	query = applyDateRange(query, start, end)

	var bookingModels []*models.BookingModel
	if err := query.Order("booking_date DESC").Find(&bookingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed bookings: %w", err)
	}
	return r.mapper.ToEntities(bookingModels)
}

// SummarizeEarnings aggregates in the database so the earnings endpoint
// does not load every booking row into memory.
func (r *BookingRepositoryImpl) SummarizeEarnings(ctx context.Context, trainerID uint, start, end *time.Time) (*booking.EarningsSummary, error) {
	var row struct {
		BookingCount    int64
		TotalRevenue    int64
		TotalCommission int64
		TotalEarnings   int64
	}

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.BookingModel{}).
		Where("trainer_id = ? AND status = ?", trainerID, booking.StatusCompleted)
	query = applyDateRange(query, start, end)

	err := query.Select(
		"COUNT(*) AS booking_count, " +
			"COALESCE(SUM(total_price), 0) AS total_revenue, " +
			"COALESCE(SUM(commission_amount), 0) AS total_commission, " +
			"COALESCE(SUM(trainer_earnings), 0) AS total_earnings",
	).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize earnings: %w", err)
	}

	return &booking.EarningsSummary{
		TrainerID:       trainerID,
		BookingCount:    row.BookingCount,
		TotalRevenue:    row.TotalRevenue,
		TotalCommission: row.TotalCommission,
		TotalEarnings:   row.TotalEarnings,
	}, nil
}

func applyDateRange(query *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where("booking_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("booking_date <= ?", *end)
	}
	return query
}
