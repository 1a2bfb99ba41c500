package notification

import (
	"errors"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// Domain errors for notifications.
var (
	// ErrNotificationIsNotConstructed is returned when a Notification was not
	// created via a constructor.
	ErrNotificationIsNotConstructed = errors.New(
		"Notification must be created via NewNotification or RestoreNotification constructor")
	// ErrAlreadyRead is returned when marking an already read notification.
	ErrAlreadyRead = errors.New("notification is already read")
)

// Notification is a stored in-app notification: one user-facing record of a
// job lifecycle event. It doubles as the payload pushed to live sessions and
// the unit returned by the polling feed.
type Notification struct {
	id     kernel.UUID
	userID kernel.UUID
	jobID  kernel.UUID

	// kind is the wire name of the originating event.
	kind   string
	title  string
	body   string
	urgent bool

	createdAt time.Time
	readAt    *time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification record.
func NewNotification(
	id kernel.UUID,
	userID kernel.UUID,
	jobID kernel.UUID,
	kind string,
	title string,
	body string,
	urgent bool,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		urgent: urgent,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setUserID(userID),
		n.setJobID(jobID),
		n.setKind(kind),
		n.setTitle(title),
		n.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	n.body = body
	return n, nil
}

// RestoreNotification reconstructs a notification from persistent storage.
func RestoreNotification(
	id kernel.UUID,
	userID kernel.UUID,
	jobID kernel.UUID,
	kind string,
	title string,
	body string,
	urgent bool,
	createdAt time.Time,
	readAt *time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, jobID, kind, title, body, urgent, createdAt)
	if err != nil {
		return nil, err
	}
	n.readAt = readAt
	return n, nil
}

// Validate ensures the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// UserID returns the recipient.
func (n *Notification) UserID() kernel.UUID { return n.userID }

// JobID returns the job the notification is about.
func (n *Notification) JobID() kernel.UUID { return n.jobID }

// Kind returns the wire name of the originating event.
func (n *Notification) Kind() string { return n.kind }

// Title returns the short headline.
func (n *Notification) Title() string { return n.title }

// Body returns the full message text.
func (n *Notification) Body() string { return n.body }

// IsUrgent reports whether the originating event bypassed preferences.
func (n *Notification) IsUrgent() bool { return n.urgent }

// CreatedAt returns when the notification was produced.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// ReadAt returns when the user read the notification, or nil.
func (n *Notification) ReadAt() *time.Time { return n.readAt }

// IsRead reports whether the user has read the notification.
func (n *Notification) IsRead() bool { return n.readAt != nil }

// MarkRead records the read timestamp exactly once.
func (n *Notification) MarkRead(at time.Time) error {
	if n.readAt != nil {
		return ErrAlreadyRead
	}
	t := at.UTC()
	n.readAt = &t
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.userID = id
	return nil
}

func (n *Notification) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.jobID = id
	return nil
}

func (n *Notification) setKind(kind string) error {
	if kind == "" {
		return errs.NewValueIsRequiredError("kind")
	}
	n.kind = kind
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}

func (n *Notification) setCreatedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	n.createdAt = at.UTC()
	return nil
}
