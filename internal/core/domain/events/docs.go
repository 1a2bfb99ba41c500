// Package events defines the closed union of job lifecycle domain events.
// Events are immutable facts published after their producing transition has
// been committed; they carry both participants so subscribers can resolve
// recipients without loading the job.
package events
