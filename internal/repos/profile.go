package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Profile, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	UpdateScores(ctx context.Context, tx *gorm.DB, id uuid.UUID, leadScore int, churnRisk string) error
	// AddTagIfAbsent unions tag into the profile's tag set. Returns false
	// when the tag was already present.
	AddTagIfAbsent(ctx context.Context, tx *gorm.DB, id uuid.UUID, tag string) (bool, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.Profile) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(profiles) == 0 {
		return []*types.Profile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (pr *profileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Profile
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *profileRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (pr *profileRepo) UpdateScores(ctx context.Context, tx *gorm.DB, id uuid.UUID, leadScore int, churnRisk string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"lead_score": leadScore,
			"churn_risk": churnRisk,
		}).Error
}

func (pr *profileRepo) AddTagIfAbsent(ctx context.Context, tx *gorm.DB, id uuid.UUID, tag string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if tag == "" {
		return false, fmt.Errorf("empty tag")
	}

	added := false
	err := transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		var profile types.Profile
		if err := forUpdate(inner).
			Where("id = ?", id).
			First(&profile).Error; err != nil {
			return err
		}

		var tags []string
		if len(profile.Tags) > 0 {
			if err := json.Unmarshal(profile.Tags, &tags); err != nil {
				pr.log.Warn("Resetting unreadable tag set", "profile_id", id, "error", err)
				tags = nil
			}
		}
		for _, existing := range tags {
			if existing == tag {
				return nil
			}
		}

		tags = append(tags, tag)
		raw, err := json.Marshal(tags)
		if err != nil {
			return err
		}
		if err := inner.Model(&types.Profile{}).
			Where("id = ?", id).
			Update("tags", datatypes.JSON(raw)).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
