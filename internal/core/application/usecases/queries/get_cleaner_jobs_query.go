// Package queries contains read-only operations for retrieving system state.
// Implements the Query side of CQRS: handlers read the database directly and
// return plain response rows, bypassing the aggregate repositories.
package queries

import (
	"errors"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/guard"
)

// ErrGetCleanerJobsQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetCleanerJobsQueryIsNotConstructed = errors.New(
	"GetCleanerJobsQuery must be created via NewGetCleanerJobsQuery constructor",
)

// GetCleanerJobsQuery retrieves a cleaner's job board: every job offered to
// or worked by the cleaner, newest visit first.
type GetCleanerJobsQuery struct {
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCleanerJobsQuery creates a validated job board query.
func NewGetCleanerJobsQuery(cleanerID kernel.UUID) (GetCleanerJobsQuery, error) {
	if err := cleanerID.Validate(); err != nil {
		return GetCleanerJobsQuery{}, err
	}
	return GetCleanerJobsQuery{
		cleanerID: cleanerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCleanerJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetCleanerJobsQueryIsNotConstructed)
}

// CleanerID returns the cleaner whose board is requested.
func (q GetCleanerJobsQuery) CleanerID() kernel.UUID {
	return q.cleanerID
}

// GetCleanerJobsQueryResponse is one row of the cleaner's job board.
type GetCleanerJobsQueryResponse struct {
	ID                        kernel.UUID
	Address                   string
	ScheduledAt               time.Time
	State                     string
	SubState                  string
	ContractedDurationMinutes int
	BillableMinutes           int
}
