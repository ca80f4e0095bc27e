package service

import (
	"context"
	"strings"

	"github.com/aebalz/vibetrack/internal/model"
	"github.com/aebalz/vibetrack/internal/repository"
)

// PreferenceInput is a partial update; nil fields keep their value.
type PreferenceInput struct {
	ThemeID              *string `json:"themeId"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

// PreferenceServiceInterface reads and updates the UI preferences.
type PreferenceServiceInterface interface {
	Get(ctx context.Context) (model.Preference, error)
	Update(ctx context.Context, in PreferenceInput) (model.Preference, error)
}

// PreferenceService implements PreferenceServiceInterface.
type PreferenceService struct {
	repo repository.PreferenceRepositoryInterface
}

func NewPreferenceService(repo repository.PreferenceRepositoryInterface) *PreferenceService {
	return &PreferenceService{repo: repo}
}

// Get returns the preferences. A stored theme that no longer exists resolves
// to the first theme.
func (s *PreferenceService) Get(ctx context.Context) (model.Preference, error) {
	pref, err := s.repo.Get(ctx)
	if err != nil {
		return model.Preference{}, err
	}
	pref.ThemeID = model.ResolveTheme(pref.ThemeID).ID
	return pref, nil
}

// Update applies in to the stored preferences. Unknown theme ids are rejected.
func (s *PreferenceService) Update(ctx context.Context, in PreferenceInput) (model.Preference, error) {
	pref, err := s.Get(ctx)
	if err != nil {
		return model.Preference{}, err
	}

	if in.ThemeID != nil {
		id := strings.TrimSpace(*in.ThemeID)
		theme, ok := model.LookupTheme(id)
		if !ok {
			return model.Preference{}, validationError("unknown theme %q", id)
		}
		pref.ThemeID = theme.ID
	}
	if in.NotificationsEnabled != nil {
		pref.NotificationsEnabled = *in.NotificationsEnabled
	}
	return s.repo.Save(ctx, pref)
}
