package ports

import (
	"context"

	"cleaning/internal/core/domain/model/notification"
)

// LivePublisher pushes a notification to the user's live sessions
// (WebSocket and SSE). Live delivery is best effort and not gated by
// channel preferences: a connected UI always sees fresh state.
type LivePublisher interface {
	PublishToUser(ctx context.Context, userEmail string, record *notification.Notification) error
}
