package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aebalz/vibetrack/internal/model"
)

// PreferenceRepositoryInterface persists the single preferences row.
type PreferenceRepositoryInterface interface {
	Get(ctx context.Context) (model.Preference, error)
	Save(ctx context.Context, pref model.Preference) (model.Preference, error)
}

// PreferenceRepository implements PreferenceRepositoryInterface on gorm.
type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// Get returns the stored preferences, or the defaults when none were saved.
func (r *PreferenceRepository) Get(ctx context.Context) (model.Preference, error) {
	var pref model.Preference
	err := r.DB.WithContext(ctx).Where("id = ?", model.PreferenceID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultPreference(), nil
	}
	if err != nil {
		return model.Preference{}, fmt.Errorf("get preferences: %w", err)
	}
	return pref, nil
}

// Save writes pref as the preferences row.
func (r *PreferenceRepository) Save(ctx context.Context, pref model.Preference) (model.Preference, error) {
	pref.ID = model.PreferenceID
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme_id", "notifications_enabled", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return model.Preference{}, fmt.Errorf("save preferences: %w", err)
	}
	return pref, nil
}
