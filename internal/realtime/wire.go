// Package realtime delivers notifications to connected user sessions over
// WebSocket and SSE. The wire protocol is JSON frames: a client opens with
// an auth frame carrying its user email, the server pushes notification
// frames, and ping frames are answered with pong.
package realtime

import (
	"time"

	"cleaning/internal/core/domain/model/notification"
)

// Frame types of the wire protocol.
const (
	FrameAuth         = "auth"
	FramePing         = "ping"
	FramePong         = "pong"
	FrameNotification = "notification"
)

// HeartbeatInterval is how often live connections exchange heartbeats.
// Connections silent for longer than this are considered dropped.
const HeartbeatInterval = 25 * time.Second

// Frame is one JSON message on a live connection.
type Frame struct {
	Type      string               `json:"type"`
	UserEmail string               `json:"userEmail,omitempty"`
	Payload   *NotificationPayload `json:"payload,omitempty"`
}

// NotificationPayload is the notification body pushed to live sessions.
// The same JSON shape streams over SSE data lines.
type NotificationPayload struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Urgent    bool      `json:"urgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// PayloadFromRecord maps a stored notification to its wire representation.
func PayloadFromRecord(record *notification.Notification) NotificationPayload {
	return NotificationPayload{
		ID:        record.ID().String(),
		JobID:     record.JobID().String(),
		Kind:      record.Kind(),
		Title:     record.Title(),
		Body:      record.Body(),
		Urgent:    record.IsUrgent(),
		CreatedAt: record.CreatedAt(),
	}
}
