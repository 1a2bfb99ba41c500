package queries

import (
	"context"
	"database/sql"

	"cleaning/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// feedPageSize caps one notification feed page.
const feedPageSize = 100

// GetNotificationsQueryHandler reads the notification feed straight from
// the database.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for feed queries.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the query. Entries come back newest first so pollers can
// use the first entry's timestamp as their next cursor.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]GetNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_id,
			kind,
			title,
			body,
			urgent,
			created_at,
			read_at
		FROM notifications
		WHERE user_id = ? AND created_at > ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.UserID().Bytes(), query.Since(), feedPageSize).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetNotificationsQueryResponse
		var id, jobID uuid.UUID
		var readAt sql.NullTime

		err = rows.Scan(
			&id,
			&jobID,
			&resp.Kind,
			&resp.Title,
			&resp.Body,
			&resp.Urgent,
			&resp.CreatedAt,
			&readAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = notificationID

		parsedJobID, idErr := kernel.UUIDFromBytes(jobID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.JobID = parsedJobID
		resp.Read = readAt.Valid

		feed = append(feed, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
