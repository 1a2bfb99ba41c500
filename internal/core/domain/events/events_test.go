package events_test

import (
	"testing"
	"time"

	"cleaning/internal/core/domain/events"
	"cleaning/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllKindsAreDistinct(t *testing.T) {
	kinds := events.AllKinds()

	assert.Len(t, kinds, 16)
	seen := make(map[events.Kind]bool, len(kinds))
	for _, kind := range kinds {
		assert.False(t, seen[kind], "duplicate kind %s", kind)
		seen[kind] = true
	}
}

func TestEventCarriesParticipants(t *testing.T) {
	jobID := kernel.NewUUID()
	clientID := kernel.NewUUID()
	cleanerID := kernel.NewUUID()
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	e := events.NewJobCompleted(jobID, clientID, cleanerID, 155, 120, 100, at)

	assert.Equal(t, events.KindJobCompleted, e.Kind())
	assert.True(t, jobID.IsEqual(e.JobID()))
	assert.True(t, clientID.IsEqual(e.ClientID()))
	assert.True(t, cleanerID.IsEqual(e.CleanerID()))
	assert.Equal(t, at, e.OccurredAt())
	assert.Equal(t, 155, e.ActualMinutes())
	assert.Equal(t, 120, e.BillableMinutes())
	assert.Equal(t, 100, e.BillableCredits())
}

func TestJobCancelledOrigin(t *testing.T) {
	jobID := kernel.NewUUID()
	clientID := kernel.NewUUID()
	cleanerID := kernel.NewUUID()
	now := time.Now()

	byClient := events.NewJobCancelled(jobID, clientID, cleanerID, clientID, "changed plans", now)
	assert.False(t, byClient.IsSystemInitiated())
	assert.True(t, clientID.IsEqual(byClient.ActorID()))

	bySystem := events.NewSystemJobCancelled(jobID, clientID, cleanerID, "offer expired before acceptance", now)
	assert.True(t, bySystem.IsSystemInitiated())
	assert.True(t, bySystem.IsUrgent())
	assert.Equal(t, "offer expired before acceptance", bySystem.Reason())
}

func TestUrgencyFlags(t *testing.T) {
	jobID := kernel.NewUUID()
	clientID := kernel.NewUUID()
	cleanerID := kernel.NewUUID()
	now := time.Now()

	urgent := []events.DomainEvent{
		events.NewExtraTimeRequested(jobID, clientID, cleanerID, 30, now),
		events.NewJobCancelled(jobID, clientID, cleanerID, clientID, "changed plans", now),
	}
	for _, e := range urgent {
		assert.True(t, e.IsUrgent(), string(e.Kind()))
	}

	ordinary := []events.DomainEvent{
		events.NewJobOffered(jobID, clientID, cleanerID, "addr", now, now),
		events.NewJobAssigned(jobID, clientID, cleanerID, now),
		events.NewCleanerEnRoute(jobID, clientID, cleanerID, now),
		events.NewCleanerArrived(jobID, clientID, cleanerID, now),
		events.NewJobStarted(jobID, clientID, cleanerID, 120, 100, now),
		events.NewPhotoUploaded(jobID, clientID, cleanerID, "before", 1, now),
		events.NewExtraTimeApproved(jobID, clientID, cleanerID, 30, now),
		events.NewExtraTimeDenied(jobID, clientID, cleanerID, now),
		events.NewJobCompleted(jobID, clientID, cleanerID, 155, 120, 100, now),
		events.NewClientApproved(jobID, clientID, cleanerID, now),
		events.NewDisputeOpened(jobID, clientID, cleanerID, "streaky windows", now),
		events.NewDisputeResolved(jobID, clientID, cleanerID, true, now),
		events.NewRescheduleRequested(jobID, clientID, cleanerID, clientID, now),
		events.NewVisitReminderDue(jobID, clientID, cleanerID, now.Add(2*time.Hour), now),
	}
	for _, e := range ordinary {
		assert.False(t, e.IsUrgent(), string(e.Kind()))
	}

	require.Len(t, append(urgent, ordinary...), len(events.AllKinds()))
}
