// Package notificationrepo persists in-app notification records. The stored
// rows back both the in-app feed and the polling fallback of the realtime
// client.
package notificationrepo

import (
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting
// notification records. Indexed by recipient and creation time for the
// feed query.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_notifications_user_created"`
	JobID     uuid.UUID `gorm:"type:uuid"`
	Kind      string
	Title     string `gorm:"type:text"`
	Body      string `gorm:"type:text"`
	Urgent    bool
	CreatedAt time.Time `gorm:"index:idx_notifications_user_created"`
	ReadAt    *time.Time
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// fromDomain converts a notification record to its database representation.
func fromDomain(record *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        record.ID().Bytes(),
		UserID:    record.UserID().Bytes(),
		JobID:     record.JobID().Bytes(),
		Kind:      record.Kind(),
		Title:     record.Title(),
		Body:      record.Body(),
		Urgent:    record.IsUrgent(),
		CreatedAt: record.CreatedAt(),
		ReadAt:    record.ReadAt(),
	}
}

// toDomain converts a database DTO to a notification record.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		userID,
		jobID,
		dto.Kind,
		dto.Title,
		dto.Body,
		dto.Urgent,
		dto.CreatedAt,
		dto.ReadAt,
	)
}
