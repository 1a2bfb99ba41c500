package queries

import (
	"context"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCleanerJobsQueryHandler reads the cleaner's job board straight from
// the database.
type GetCleanerJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetCleanerJobsQueryHandler creates a handler for job board queries.
func NewGetCleanerJobsQueryHandler(db *gorm.DB) GetCleanerJobsQueryHandler {
	return GetCleanerJobsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by scheduled time,
// newest first.
func (h GetCleanerJobsQueryHandler) Handle(
	ctx context.Context,
	query GetCleanerJobsQuery,
) ([]GetCleanerJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]GetCleanerJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			address,
			scheduled_at,
			state,
			sub_state,
			contracted_duration_minutes,
			billable_minutes
		FROM jobs
		WHERE cleaner_id = ?
		ORDER BY scheduled_at DESC
	`, query.CleanerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCleanerJobsQueryResponse
		var id uuid.UUID
		var state, subState int

		err = rows.Scan(
			&id,
			&resp.Address,
			&resp.ScheduledAt,
			&state,
			&subState,
			&resp.ContractedDurationMinutes,
			&resp.BillableMinutes,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = jobID
		resp.State = job.State(state).String()
		resp.SubState = job.SubState(subState).String()

		jobs = append(jobs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
