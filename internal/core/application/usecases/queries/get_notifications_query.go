package queries

import (
	"errors"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrGetNotificationsQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery retrieves a user's notification feed. It backs both
// the in-app inbox and the polling fallback of the realtime client: pollers
// pass the timestamp of the last notification they saw.
type GetNotificationsQuery struct {
	userID kernel.UUID
	since  time.Time

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a validated feed query. A zero since
// returns the most recent notifications.
func NewGetNotificationsQuery(userID kernel.UUID, since time.Time) (GetNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}
	return GetNotificationsQuery{
		userID: userID,
		since:  since.UTC(),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// UserID returns the feed owner.
func (q GetNotificationsQuery) UserID() kernel.UUID { return q.userID }

// Since returns the lower bound on creation time.
func (q GetNotificationsQuery) Since() time.Time { return q.since }

// GetNotificationsQueryResponse is one notification feed entry.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	JobID     kernel.UUID
	Kind      string
	Title     string
	Body      string
	Urgent    bool
	CreatedAt time.Time
	Read      bool
}
