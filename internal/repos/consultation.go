package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type ConsultationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, consultations []*types.Consultation) ([]*types.Consultation, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	HasAnyByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
}

type consultationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	repoLog := baseLog.With("repo", "ConsultationRepo")
	return &consultationRepo{db: db, log: repoLog}
}

func (cr *consultationRepo) Create(ctx context.Context, tx *gorm.DB, consultations []*types.Consultation) ([]*types.Consultation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(consultations) == 0 {
		return []*types.Consultation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&consultations).Error; err != nil {
		return nil, err
	}
	return consultations, nil
}

func (cr *consultationRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Consultation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *consultationRepo) HasAnyByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	count, err := cr.CountByUser(ctx, tx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
