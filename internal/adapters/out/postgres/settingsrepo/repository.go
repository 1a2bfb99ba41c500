package settingsrepo

import (
	"context"
	"errors"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"
	"cleaning/internal/core/ports"
	"cleaning/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRecipientDirectory implements RecipientDirectory using GORM.
type GormRecipientDirectory struct {
	db *gorm.DB
}

// NewGormRecipientDirectory creates a new GORM recipient directory.
func NewGormRecipientDirectory(db *gorm.DB) *GormRecipientDirectory {
	return &GormRecipientDirectory{db: db}
}

// GetRecipient retrieves the contact card and channel preference for a user.
// A user without a stored preference row gets the all-enabled default. A
// malformed stored phone number behaves as no phone number: SMS is skipped
// for the user while the other channels keep working.
func (r *GormRecipientDirectory) GetRecipient(ctx context.Context, userID kernel.UUID) (ports.Recipient, error) {
	if err := userID.Validate(); err != nil {
		return ports.Recipient{}, err
	}

	var contact UserContactDTO
	if err := r.db.WithContext(ctx).First(&contact, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Recipient{}, errs.NewObjectNotFoundError("user", userID.String())
		}
		return ports.Recipient{}, err
	}

	preference, err := r.loadPreference(ctx, userID)
	if err != nil {
		return ports.Recipient{}, err
	}

	var phone kernel.PhoneNumber
	if contact.Phone != "" {
		if parsed, parseErr := kernel.NewPhoneNumber(contact.Phone); parseErr == nil {
			phone = parsed
		}
	}

	return ports.Recipient{
		UserID:       userID,
		Name:         contact.Name,
		Email:        contact.Email,
		Phone:        phone,
		DeviceTokens: contact.DeviceTokens,
		Preference:   preference,
	}, nil
}

func (r *GormRecipientDirectory) loadPreference(ctx context.Context, userID kernel.UUID) (notification.Preference, error) {
	var dto PreferenceDTO
	err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.NewDefaultPreference(userID)
		}
		return notification.Preference{}, err
	}

	return notification.RestorePreference(userID, dto.InApp, dto.Email, dto.SMS, dto.Push)
}
