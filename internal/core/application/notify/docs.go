// Package notify contains the notification orchestrator: the single event
// subscriber that turns job lifecycle events into stored in-app records,
// live session pushes, and email/SMS/push dispatches, honoring per-user
// channel preferences with an urgency bypass.
package notify
