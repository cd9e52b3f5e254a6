package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type DiagnosticRepo interface {
	Create(ctx context.Context, tx *gorm.DB, diagnostics []*types.Diagnostic) ([]*types.Diagnostic, error)
	// LatestCompletedByUser returns nil when the user has none.
	LatestCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Diagnostic, error)
	// TwoLatestCompletedByUser returns up to two rows, newest first.
	TwoLatestCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Diagnostic, error)
	// LatestIncompleteByUser returns nil when the user has none.
	LatestIncompleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Diagnostic, error)
	CountCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
}

type diagnosticRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiagnosticRepo(db *gorm.DB, baseLog *logger.Logger) DiagnosticRepo {
	repoLog := baseLog.With("repo", "DiagnosticRepo")
	return &diagnosticRepo{db: db, log: repoLog}
}

func (dr *diagnosticRepo) Create(ctx context.Context, tx *gorm.DB, diagnostics []*types.Diagnostic) ([]*types.Diagnostic, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(diagnostics) == 0 {
		return []*types.Diagnostic{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&diagnostics).Error; err != nil {
		return nil, err
	}
	return diagnostics, nil
}

func (dr *diagnosticRepo) LatestCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Diagnostic, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.Diagnostic
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *diagnosticRepo) TwoLatestCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Diagnostic, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Diagnostic
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, true).
		Order("created_at DESC").
		Limit(2).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *diagnosticRepo) LatestIncompleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Diagnostic, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.Diagnostic
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *diagnosticRepo) CountCompletedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Diagnostic{}).
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
