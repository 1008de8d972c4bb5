package database

import (
	"errors"

	"cryptomaster/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceStore is a key/value store over the preferences table.
type PreferenceStore struct {
	db *gorm.DB
}

func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func (s *PreferenceStore) Get(key string) (string, bool, error) {
	var pref models.Preference
	if err := s.db.Where("pref_key = ?", key).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return pref.Value, true, nil
}

func (s *PreferenceStore) Set(key, value string) error {
	pref := models.Preference{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}
