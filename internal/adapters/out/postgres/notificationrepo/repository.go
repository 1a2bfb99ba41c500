package notificationrepo

import (
	"context"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"
	"cleaning/internal/pkg/errs"

	"gorm.io/gorm"
)

// feedPageSize caps one page of the recipient feed.
const feedPageSize = 100

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a new notification record to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, record *notification.Notification) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetForRecipientSince retrieves the recipient's notifications created after
// the given instant, newest first.
func (r *GormNotificationRepository) GetForRecipientSince(
	ctx context.Context,
	userID kernel.UUID,
	since time.Time,
) ([]*notification.Notification, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at > ?", userID.Bytes(), since).
		Order("created_at DESC").
		Limit(feedPageSize).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}

// MarkRead records the read timestamp on a notification. Marking an already
// read notification again keeps the original timestamp.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND read_at IS NULL", id.Bytes()).
		Update("read_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&NotificationDTO{}).
			Where("id = ?", id.Bytes()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("notification", id.String())
		}
	}

	return nil
}
