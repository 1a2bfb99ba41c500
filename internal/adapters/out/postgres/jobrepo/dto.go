// Package jobrepo provides data transfer objects and mapping functions for
// job persistence. It implements the repository pattern for the job domain
// aggregate, converting between domain entities and database rows.
package jobrepo

import (
	"time"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Indexed by cleaner and state for the board query and the scheduled sweeps.
type JobDTO struct {
	ID                        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ClientID                  uuid.UUID   `gorm:"type:uuid;index"`
	CleanerID                 uuid.UUID   `gorm:"type:uuid;index"`
	Address                   string      `gorm:"type:text"`
	Location                  GeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
	ScheduledAt               time.Time   `gorm:"index"`
	ContractedDurationMinutes int
	HourlyRateCredits         int
	State                     int `gorm:"index"`
	SubState                  int
	AssignedAt                *time.Time
	EnRouteAt                 *time.Time
	CheckInAt                 *time.Time
	StartAt                   *time.Time
	EndAt                     *time.Time
	CancelledAt               *time.Time
	BeforePhotos              int
	AfterPhotos               int
	MaxBillableMinutes        int
	MaxBillableCredits        int
	RequestedExtraMinutes     int
	ApprovedExtraMinutes      int
	ActualMinutesWorked       int
	BillableMinutes           int
	CancelReason              string `gorm:"type:text"`
	DisputeReason             string `gorm:"type:text"`
	ReminderSentAt            *time.Time
	Version                   int
}

// TableName overrides GORM's default naming convention to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// GeoPointDTO represents the embedded visit coordinates within the jobs table.
type GeoPointDTO struct {
	Latitude  float64
	Longitude float64
}

// fromDomain converts a job domain aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	return JobDTO{
		ID:        aggregate.ID().Bytes(),
		ClientID:  aggregate.ClientID().Bytes(),
		CleanerID: aggregate.CleanerID().Bytes(),
		Address:   aggregate.Address(),
		Location: GeoPointDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		ScheduledAt:               aggregate.ScheduledAt(),
		ContractedDurationMinutes: aggregate.ContractedDurationMinutes(),
		HourlyRateCredits:         aggregate.HourlyRateCredits(),
		State:                     int(aggregate.State()),
		SubState:                  int(aggregate.SubState()),
		AssignedAt:                aggregate.AssignedAt(),
		EnRouteAt:                 aggregate.EnRouteAt(),
		CheckInAt:                 aggregate.CheckInAt(),
		StartAt:                   aggregate.StartAt(),
		EndAt:                     aggregate.EndAt(),
		CancelledAt:               aggregate.CancelledAt(),
		BeforePhotos:              aggregate.BeforePhotos(),
		AfterPhotos:               aggregate.AfterPhotos(),
		MaxBillableMinutes:        aggregate.MaxBillableMinutes(),
		MaxBillableCredits:        aggregate.MaxBillableCredits(),
		RequestedExtraMinutes:     aggregate.RequestedExtraMinutes(),
		ApprovedExtraMinutes:      aggregate.ApprovedExtraMinutes(),
		ActualMinutesWorked:       aggregate.ActualMinutesWorked(),
		BillableMinutes:           aggregate.BillableMinutes(),
		CancelReason:              aggregate.CancelReason(),
		DisputeReason:             aggregate.DisputeReason(),
		ReminderSentAt:            aggregate.ReminderSentAt(),
		Version:                   aggregate.Version(),
	}
}

// toDomain converts a database DTO to a job domain aggregate via RestoreJob.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	cleanerID, err := kernel.UUIDFromBytes(dto.CleanerID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(job.RestoreSnapshot{
		ID:                        id,
		ClientID:                  clientID,
		CleanerID:                 cleanerID,
		Address:                   dto.Address,
		Location:                  location,
		ScheduledAt:               dto.ScheduledAt,
		ContractedDurationMinutes: dto.ContractedDurationMinutes,
		HourlyRateCredits:         dto.HourlyRateCredits,
		State:                     job.State(dto.State),
		SubState:                  job.SubState(dto.SubState),
		AssignedAt:                dto.AssignedAt,
		EnRouteAt:                 dto.EnRouteAt,
		CheckInAt:                 dto.CheckInAt,
		StartAt:                   dto.StartAt,
		EndAt:                     dto.EndAt,
		CancelledAt:               dto.CancelledAt,
		BeforePhotos:              dto.BeforePhotos,
		AfterPhotos:               dto.AfterPhotos,
		MaxBillableMinutes:        dto.MaxBillableMinutes,
		MaxBillableCredits:        dto.MaxBillableCredits,
		RequestedExtraMinutes:     dto.RequestedExtraMinutes,
		ApprovedExtraMinutes:      dto.ApprovedExtraMinutes,
		ActualMinutesWorked:       dto.ActualMinutesWorked,
		BillableMinutes:           dto.BillableMinutes,
		CancelReason:              dto.CancelReason,
		DisputeReason:             dto.DisputeReason,
		ReminderSentAt:            dto.ReminderSentAt,
		Version:                   dto.Version,
	})
}
