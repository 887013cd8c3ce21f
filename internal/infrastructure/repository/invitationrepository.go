package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fitmo-inc/fitmo/internal/domain/organization"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/mappers"
	"github.com/fitmo-inc/fitmo/internal/infrastructure/persistence/models"
	"github.com/fitmo-inc/fitmo/internal/shared/db"
	"github.com/fitmo-inc/fitmo/internal/shared/id"
	"github.com/fitmo-inc/fitmo/internal/shared/logger"
)

type InvitationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvitationMapper
	logger logger.Interface
}

func NewInvitationRepository(database *gorm.DB, logger logger.Interface) organization.InvitationRepository {
	return &InvitationRepositoryImpl{
		db:     database,
		mapper: mappers.NewInvitationMapper(),
		logger: logger,
	}
}

// Upsert inserts the invitation or, when a row already exists for the
// (organization, email) pair, rotates it in place so re-invites never
// accumulate rows.
func (r *InvitationRepositoryImpl) Upsert(ctx context.Context, inv *organization.Invitation) error {
	if inv.SID() == "" {
		sid, err := id.GenerateWithPrefix(id.PrefixInvitation, id.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to generate invitation SID: %w", err)
		}
		inv.SetSID(sid)
	}

	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to convert invitation to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "organization_id"}, {Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token", "invited_by_id", "accepted", "accepted_by_id",
			"accepted_at", "expires_at", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert invitation",
			"error", err,
			"organization_id", inv.OrganizationID(),
			"email", inv.Email())
		return fmt.Errorf("failed to upsert invitation: %w", err)
	}

	if inv.ID() == 0 && model.ID > 0 {
		if err := inv.SetID(model.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvitationRepositoryImpl) GetByToken(ctx context.Context, token string) (*organization.Invitation, error) {
	var model models.InvitationModel
	err := db.GetTxFromContext(ctx, r.db).Where("token = ?", token).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation by token: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvitationRepositoryImpl) GetByOrganizationAndEmail(ctx context.Context, orgID uint, email string) (*organization.Invitation, error) {
	var model models.InvitationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("organization_id = ? AND email = ?", orgID, email).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvitationRepositoryImpl) ListPendingByEmail(ctx context.Context, email string) ([]*organization.Invitation, error) {
	var inviteModels []*models.InvitationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("email = ? AND accepted = ?", email, false).
		Order("created_at DESC").
		Find(&inviteModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invitations: %w", err)
	}
	return r.mapper.ToEntities(inviteModels)
}

func (r *InvitationRepositoryImpl) Update(ctx context.Context, inv *organization.Invitation) error {
	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to convert invitation to model: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	err = conn.Model(&models.InvitationModel{}).
		Where("id = ?", inv.ID()).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		r.logger.Errorw("failed to update invitation", "error", err, "invitation_id", inv.ID())
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}
