// Package settingsrepo resolves notification recipients: the contact card a
// user registered with plus their per-channel notification preference.
package settingsrepo

import (
	"github.com/google/uuid"
)

// UserContactDTO represents the stored contact card for one user.
type UserContactDTO struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string
	Phone        string
	DeviceTokens []string `gorm:"serializer:json"`
}

// TableName overrides GORM's default naming convention to use "user_contacts".
func (UserContactDTO) TableName() string {
	return "user_contacts"
}

// PreferenceDTO represents the stored per-channel notification preference.
// Users without a row fall back to the all-enabled default.
type PreferenceDTO struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey"`
	InApp  bool
	Email  bool
	SMS    bool
	Push   bool
}

// TableName overrides GORM's default naming convention to use
// "notification_preferences".
func (PreferenceDTO) TableName() string {
	return "notification_preferences"
}
