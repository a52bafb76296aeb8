// Package settings provides the persisted key-value store used by the
// preference stores.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	value, ok, err := repo.Get(ctx, "themePreference")
package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the stored value for key. A missing key is reported with
// ok=false and a nil error.
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	setting, err := r.GetSetting(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set creates or updates the value for key.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	if err := r.SetSetting(ctx, key, value); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetSetting retrieves a setting row by key.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SetSetting creates or updates a setting row in a single upsert.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// All returns every stored key and value.
func (r *Repository) All(ctx context.Context) (map[string]string, error) {
	var rows []entities.Setting
	if err := r.db.WithContext(ctx).Order("key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}
