package ports

import (
	"context"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for stored in-app
// notifications. The same records back the in-app feed and the polling
// fallback of the realtime client.
type NotificationRepository interface {
	// Add persists a new notification record.
	Add(ctx context.Context, record *notification.Notification) error

	// GetForRecipientSince retrieves the recipient's notifications created
	// after the given instant, newest first. A zero since returns the most
	// recent page.
	GetForRecipientSince(ctx context.Context, userID kernel.UUID, since time.Time) ([]*notification.Notification, error)

	// MarkRead records the read timestamp on a notification.
	// Returns errs.ErrObjectNotFound when no such notification exists.
	MarkRead(ctx context.Context, id kernel.UUID, at time.Time) error
}
