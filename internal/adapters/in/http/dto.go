// Package http exposes the job lifecycle and notification feed over a
// hand-written echo API, plus the realtime WebSocket and SSE endpoints.
package http

import "time"

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateJobRequest is the body of POST /api/v1/jobs.
type CreateJobRequest struct {
	ClientID                  string  `json:"clientId"`
	CleanerID                 string  `json:"cleanerId"`
	Address                   string  `json:"address"`
	Latitude                  float64 `json:"latitude"`
	Longitude                 float64 `json:"longitude"`
	ScheduledAt               string  `json:"scheduledAt"`
	ContractedDurationMinutes int     `json:"contractedDurationMinutes"`
	HourlyRateCredits         int     `json:"hourlyRateCredits"`
}

// CreateJobResponse answers a successful job creation.
type CreateJobResponse struct {
	ID string `json:"id"`
}

// ActorRequest is the body of transitions that only need the acting user.
type ActorRequest struct {
	ActorID string `json:"actorId"`
}

// LocationRequest is the body of transitions gated by the geofence: the
// actor plus their current GPS fix.
type LocationRequest struct {
	ActorID   string  `json:"actorId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CancelRequest is the body of POST /api/v1/jobs/:id/cancel.
type CancelRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

// PhotoRequest is the body of POST /api/v1/jobs/:id/photos.
type PhotoRequest struct {
	ActorID string `json:"actorId"`
	Kind    string `json:"kind"`
}

// ExtraTimeRequest is the body of POST /api/v1/jobs/:id/extra-time.
type ExtraTimeRequest struct {
	ActorID string `json:"actorId"`
	Minutes int    `json:"minutes"`
}

// ResolveExtraTimeRequest is the body of POST
// /api/v1/jobs/:id/extra-time/resolve.
type ResolveExtraTimeRequest struct {
	ActorID  string `json:"actorId"`
	Approved bool   `json:"approved"`
	Minutes  int    `json:"minutes"`
}

// DisputeRequest is the body of POST /api/v1/jobs/:id/dispute.
type DisputeRequest struct {
	ActorID string `json:"actorId"`
	Reason  string `json:"reason"`
}

// ResolveDisputeRequest is the body of POST
// /api/v1/jobs/:id/dispute/resolve.
type ResolveDisputeRequest struct {
	ActorID  string `json:"actorId"`
	Escalate bool   `json:"escalate"`
}

// JobBoardEntry is one row of GET /api/v1/jobs.
type JobBoardEntry struct {
	ID                        string    `json:"id"`
	Address                   string    `json:"address"`
	ScheduledAt               time.Time `json:"scheduledAt"`
	State                     string    `json:"state"`
	SubState                  string    `json:"subState"`
	ContractedDurationMinutes int       `json:"contractedDurationMinutes"`
	BillableMinutes           int       `json:"billableMinutes"`
}

// NotificationEntry is one row of GET /api/v1/notifications.
type NotificationEntry struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Urgent    bool      `json:"urgent"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}
