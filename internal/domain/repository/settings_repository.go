package repository

import (
	"context"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
)

// SettingsRepository stores the per-user settings document.
// GetByUser returns ErrNotFound when the user has no settings yet;
// callers treat that as "all preferences enabled".
type SettingsRepository interface {
	GetByUser(ctx context.Context, user string) (*entity.UserSettings, error)
	Upsert(ctx context.Context, s *entity.UserSettings) error
	DeleteForUser(ctx context.Context, user string) error
}
