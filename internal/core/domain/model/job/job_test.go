package job_test

import (
	"errors"
	"testing"
	"time"

	"cleaning/internal/core/domain/model/job"
	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clientID  kernel.UUID
	cleanerID kernel.UUID
	location  kernel.GeoPoint
	job       *job.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clientID := kernel.NewUUID()
	cleanerID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(55.7558, 37.6173)
	require.NoError(t, err)

	j, err := job.NewJob(kernel.NewUUID(), clientID, cleanerID,
		"12 Tverskaya St, apt 4", location, baseTime, 120, 50)
	require.NoError(t, err)

	return &fixture{clientID: clientID, cleanerID: cleanerID, location: location, job: j}
}

// nearbyFix is ~100m from the fixture location, inside the geofence.
func (f *fixture) nearbyFix(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(55.7567, 37.6173)
	require.NoError(t, err)
	return p
}

// farawayFix is several kilometres away, well outside the geofence.
func (f *fixture) farawayFix(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(55.8000, 37.7000)
	require.NoError(t, err)
	return p
}

// advanceTo runs the happy-path transitions up to and including target.
func (f *fixture) advanceTo(t *testing.T, target job.State) {
	t.Helper()
	fix := f.nearbyFix(t)

	steps := []struct {
		state job.State
		do    func() error
	}{
		{job.Assigned, func() error { return f.job.Accept(f.cleanerID, baseTime) }},
		{job.EnRoute, func() error { return f.job.MarkEnRoute(f.cleanerID, baseTime.Add(5*time.Minute)) }},
		{job.Arrived, func() error { return f.job.MarkArrived(f.cleanerID, baseTime.Add(20*time.Minute), fix) }},
		{job.InProgress, func() error { return f.job.Start(f.cleanerID, baseTime.Add(25*time.Minute), fix) }},
		{job.AwaitingClientReview, func() error {
			return f.job.Complete(f.cleanerID, baseTime.Add(145*time.Minute), fix)
		}},
	}

	for _, step := range steps {
		require.NoError(t, step.do())
		if step.state == target {
			return
		}
	}
	t.Fatalf("cannot advance to %s via happy path", target)
}

func TestNewJob(t *testing.T) {
	t.Run("creates job in offered state", func(t *testing.T) {
		f := newFixture(t)

		assert.Equal(t, job.Offered, f.job.State())
		assert.Equal(t, job.SubStateNone, f.job.SubState())
		assert.Equal(t, 120, f.job.ContractedDurationMinutes())
		assert.Equal(t, 50, f.job.HourlyRateCredits())
		assert.Nil(t, f.job.AssignedAt())
		assert.Zero(t, f.job.Version())
		require.NoError(t, f.job.Validate())
	})

	t.Run("rejects missing required inputs", func(t *testing.T) {
		location, err := kernel.NewGeoPoint(55.7558, 37.6173)
		require.NoError(t, err)

		testCases := []struct {
			name string
			make func() (*job.Job, error)
		}{
			{"empty id", func() (*job.Job, error) {
				return job.NewJob(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
					"addr", location, baseTime, 120, 50)
			}},
			{"empty address", func() (*job.Job, error) {
				return job.NewJob(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					"", location, baseTime, 120, 50)
			}},
			{"unconstructed location", func() (*job.Job, error) {
				return job.NewJob(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					"addr", kernel.GeoPoint{}, baseTime, 120, 50)
			}},
			{"zero scheduled time", func() (*job.Job, error) {
				return job.NewJob(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					"addr", location, time.Time{}, 120, 50)
			}},
			{"non-positive duration", func() (*job.Job, error) {
				return job.NewJob(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					"addr", location, baseTime, 0, 50)
			}},
			{"non-positive rate", func() (*job.Job, error) {
				return job.NewJob(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
					"addr", location, baseTime, 120, -1)
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.make()
				require.Error(t, err)
			})
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var j job.Job
		require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	})
}

func TestJobAccept(t *testing.T) {
	t.Run("assigned cleaner accepts the offer", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.Accept(f.cleanerID, baseTime)

		require.NoError(t, err)
		assert.Equal(t, job.Assigned, f.job.State())
		require.NotNil(t, f.job.AssignedAt())
		assert.Equal(t, baseTime, *f.job.AssignedAt())
	})

	t.Run("other actors cannot accept", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.Accept(f.clientID, baseTime)

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
		assert.Equal(t, job.Offered, f.job.State())
		assert.Nil(t, f.job.AssignedAt())
	})

	t.Run("cannot accept twice", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.job.Accept(f.cleanerID, baseTime))

		err := f.job.Accept(f.cleanerID, baseTime)

		require.ErrorIs(t, err, job.ErrWrongState)
	})
}

func TestJobMarkArrived(t *testing.T) {
	t.Run("records check-in inside the geofence", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.EnRoute)

		err := f.job.MarkArrived(f.cleanerID, baseTime.Add(20*time.Minute), f.nearbyFix(t))

		require.NoError(t, err)
		assert.Equal(t, job.Arrived, f.job.State())
		require.NotNil(t, f.job.CheckInAt())
	})

	t.Run("rejects check-in outside the geofence", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.EnRoute)

		err := f.job.MarkArrived(f.cleanerID, baseTime.Add(20*time.Minute), f.farawayFix(t))

		require.ErrorIs(t, err, job.ErrOutsideGeofence)

		var geoErr *job.GeofenceError
		require.ErrorAs(t, err, &geoErr)
		assert.Greater(t, geoErr.DistanceMeters, job.GeofenceRadiusMeters)
		assert.Equal(t, job.GeofenceRadiusMeters, geoErr.RadiusMeters)

		// Rejected transition mutates nothing.
		assert.Equal(t, job.EnRoute, f.job.State())
		assert.Nil(t, f.job.CheckInAt())
	})

	t.Run("rejects arrival before travel started", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Assigned)

		err := f.job.MarkArrived(f.cleanerID, baseTime, f.nearbyFix(t))

		require.ErrorIs(t, err, job.ErrWrongState)
	})
}

func TestJobStart(t *testing.T) {
	t.Run("freezes the billable ceiling", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Arrived)

		err := f.job.Start(f.cleanerID, baseTime.Add(25*time.Minute), f.nearbyFix(t))

		require.NoError(t, err)
		assert.Equal(t, job.InProgress, f.job.State())
		assert.Equal(t, 120, f.job.MaxBillableMinutes())
		assert.Equal(t, 100, f.job.MaxBillableCredits())
		require.NotNil(t, f.job.StartAt())
	})

	t.Run("repeats the geofence check", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Arrived)

		err := f.job.Start(f.cleanerID, baseTime.Add(25*time.Minute), f.farawayFix(t))

		require.ErrorIs(t, err, job.ErrOutsideGeofence)
		assert.Equal(t, job.Arrived, f.job.State())
		assert.Zero(t, f.job.MaxBillableMinutes())
	})
}

func TestJobComplete(t *testing.T) {
	t.Run("computes the billing snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		// Started at +25m, completed at +135m: 110 worked minutes, under the
		// 120-minute ceiling.
		err := f.job.Complete(f.cleanerID, baseTime.Add(135*time.Minute), f.nearbyFix(t))

		require.NoError(t, err)
		assert.Equal(t, job.AwaitingClientReview, f.job.State())
		assert.Equal(t, 110, f.job.ActualMinutesWorked())
		assert.Equal(t, 110, f.job.BillableMinutes())
		require.NotNil(t, f.job.EndAt())
	})

	t.Run("caps billable minutes at the ceiling", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		// 155 worked minutes against a 120-minute ceiling with no extra time.
		err := f.job.Complete(f.cleanerID, baseTime.Add(180*time.Minute), f.nearbyFix(t))

		require.NoError(t, err)
		assert.Equal(t, 155, f.job.ActualMinutesWorked())
		assert.Equal(t, 120, f.job.BillableMinutes())
		assert.Equal(t, 100, f.job.BillableCredits())
	})

	t.Run("approved extra time raises the cap", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 60))
		require.NoError(t, f.job.ResolveExtraTime(f.clientID, true, 30))

		err := f.job.Complete(f.cleanerID, baseTime.Add(180*time.Minute), f.nearbyFix(t))

		require.NoError(t, err)
		assert.Equal(t, 155, f.job.ActualMinutesWorked())
		assert.Equal(t, 150, f.job.BillableMinutes())
	})

	t.Run("repeats the geofence check", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		err := f.job.Complete(f.cleanerID, baseTime.Add(135*time.Minute), f.farawayFix(t))

		require.ErrorIs(t, err, job.ErrOutsideGeofence)
		assert.Equal(t, job.InProgress, f.job.State())
		assert.Nil(t, f.job.EndAt())
	})
}

func TestJobCancel(t *testing.T) {
	t.Run("cleaner cancels with a reason", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Assigned)

		err := f.job.Cancel(f.cleanerID, baseTime.Add(time.Hour), "family emergency")

		require.NoError(t, err)
		assert.Equal(t, job.Cancelled, f.job.State())
		assert.Equal(t, "family emergency", f.job.CancelReason())
		require.NotNil(t, f.job.CancelledAt())
	})

	t.Run("client cancels too", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.Cancel(f.clientID, baseTime, "changed plans")

		require.NoError(t, err)
		assert.Equal(t, job.Cancelled, f.job.State())
	})

	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.Cancel(f.clientID, baseTime, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, job.Offered, f.job.State())
	})

	t.Run("strangers cannot cancel", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.Cancel(kernel.NewUUID(), baseTime, "reason")

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
	})

	t.Run("cannot cancel a completed job", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)
		require.NoError(t, f.job.ApproveCompletion(f.clientID))

		err := f.job.Cancel(f.clientID, baseTime, "too late")

		require.ErrorIs(t, err, job.ErrWrongState)
	})
}

func TestJobAddPhoto(t *testing.T) {
	t.Run("counts photos while in progress", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		require.NoError(t, f.job.AddPhoto(f.cleanerID, job.PhotoBefore))
		require.NoError(t, f.job.AddPhoto(f.cleanerID, job.PhotoBefore))
		require.NoError(t, f.job.AddPhoto(f.cleanerID, job.PhotoAfter))

		assert.Equal(t, 2, f.job.BeforePhotos())
		assert.Equal(t, 1, f.job.AfterPhotos())
		assert.Equal(t, job.InProgress, f.job.State())
	})

	t.Run("rejected outside in progress", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Arrived)

		err := f.job.AddPhoto(f.cleanerID, job.PhotoBefore)

		require.ErrorIs(t, err, job.ErrWrongState)
		assert.Zero(t, f.job.BeforePhotos())
	})

	t.Run("only the cleaner uploads", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		err := f.job.AddPhoto(f.clientID, job.PhotoAfter)

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
	})
}

func TestJobExtraTime(t *testing.T) {
	t.Run("request flags the job without changing state", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		err := f.job.RequestExtraTime(f.cleanerID, 45)

		require.NoError(t, err)
		assert.Equal(t, job.InProgress, f.job.State())
		assert.Equal(t, job.SubStateExtraTimeRequested, f.job.SubState())
		assert.Equal(t, 45, f.job.RequestedExtraMinutes())
	})

	t.Run("only one request may be pending", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 45))

		err := f.job.RequestExtraTime(f.cleanerID, 30)

		require.ErrorIs(t, err, job.ErrExtraTimeAlreadyPending)
		assert.Equal(t, 45, f.job.RequestedExtraMinutes())
	})

	t.Run("request rejected outside in progress", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.Arrived)

		err := f.job.RequestExtraTime(f.cleanerID, 45)

		require.ErrorIs(t, err, job.ErrWrongState)
	})

	t.Run("approval raises the ceiling by the approved minutes", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 60))

		err := f.job.ResolveExtraTime(f.clientID, true, 30)

		require.NoError(t, err)
		assert.Equal(t, 30, f.job.ApprovedExtraMinutes())
		assert.Equal(t, job.SubStateNone, f.job.SubState())
		assert.Zero(t, f.job.RequestedExtraMinutes())
	})

	t.Run("denial clears the flag without raising the ceiling", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 60))

		err := f.job.ResolveExtraTime(f.clientID, false, 0)

		require.NoError(t, err)
		assert.Zero(t, f.job.ApprovedExtraMinutes())
		assert.Equal(t, job.SubStateNone, f.job.SubState())
	})

	t.Run("only the client resolves", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 60))

		err := f.job.ResolveExtraTime(f.cleanerID, true, 60)

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
		assert.Equal(t, job.SubStateExtraTimeRequested, f.job.SubState())
	})

	t.Run("nothing to resolve without a pending request", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		err := f.job.ResolveExtraTime(f.clientID, true, 30)

		require.ErrorIs(t, err, job.ErrNoExtraTimePending)
	})

	t.Run("approvals accumulate", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.InProgress)

		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 30))
		require.NoError(t, f.job.ResolveExtraTime(f.clientID, true, 30))
		require.NoError(t, f.job.RequestExtraTime(f.cleanerID, 15))
		require.NoError(t, f.job.ResolveExtraTime(f.clientID, true, 15))

		assert.Equal(t, 45, f.job.ApprovedExtraMinutes())
	})
}

func TestJobReviewFlow(t *testing.T) {
	t.Run("client approves completion", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)

		err := f.job.ApproveCompletion(f.clientID)

		require.NoError(t, err)
		assert.Equal(t, job.CompletedApproved, f.job.State())
	})

	t.Run("cleaner cannot self-approve", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)

		err := f.job.ApproveCompletion(f.cleanerID)

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
		assert.Equal(t, job.AwaitingClientReview, f.job.State())
	})

	t.Run("client opens a dispute with a reason", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)

		err := f.job.OpenDispute(f.clientID, "kitchen was not cleaned")

		require.NoError(t, err)
		assert.Equal(t, job.Disputed, f.job.State())
		assert.Equal(t, "kitchen was not cleaned", f.job.DisputeReason())
	})

	t.Run("dispute requires a reason", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)

		err := f.job.OpenDispute(f.clientID, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, job.AwaitingClientReview, f.job.State())
	})

	t.Run("dispute resolves in cleaner's favour", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)
		require.NoError(t, f.job.OpenDispute(f.clientID, "streaky windows"))

		err := f.job.ResolveDispute(kernel.NewUUID(), false)

		require.NoError(t, err)
		assert.Equal(t, job.CompletedApproved, f.job.State())
	})

	t.Run("escalated dispute blocks cancellation", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.AwaitingClientReview)
		require.NoError(t, f.job.OpenDispute(f.clientID, "streaky windows"))
		require.NoError(t, f.job.ResolveDispute(kernel.NewUUID(), true))

		require.Equal(t, job.UnderReview, f.job.State())
		err := f.job.Cancel(f.clientID, baseTime, "give up")
		require.ErrorIs(t, err, job.ErrWrongState)
	})
}

func TestJobCanRequestReschedule(t *testing.T) {
	t.Run("allowed before travel begins", func(t *testing.T) {
		f := newFixture(t)
		assert.NoError(t, f.job.CanRequestReschedule(f.clientID))

		f.advanceTo(t, job.Assigned)
		assert.NoError(t, f.job.CanRequestReschedule(f.cleanerID))
	})

	t.Run("rejected once travel started", func(t *testing.T) {
		f := newFixture(t)
		f.advanceTo(t, job.EnRoute)

		err := f.job.CanRequestReschedule(f.clientID)

		require.ErrorIs(t, err, job.ErrWrongState)
	})

	t.Run("participants only", func(t *testing.T) {
		f := newFixture(t)

		err := f.job.CanRequestReschedule(kernel.NewUUID())

		require.ErrorIs(t, err, job.ErrActorNotAllowed)
	})
}

func TestJobMarkReminderSent(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.job.MarkReminderSent(baseTime.Add(-2*time.Hour)))
	require.NotNil(t, f.job.ReminderSentAt())

	err := f.job.MarkReminderSent(baseTime.Add(-time.Hour))
	require.ErrorIs(t, err, job.ErrWrongState)
}

func TestRestoreJob(t *testing.T) {
	t.Run("reconstructs a mid-lifecycle job", func(t *testing.T) {
		f := newFixture(t)
		checkIn := baseTime.Add(20 * time.Minute)
		start := baseTime.Add(25 * time.Minute)

		restored, err := job.RestoreJob(job.RestoreSnapshot{
			ID:                        f.job.ID(),
			ClientID:                  f.clientID,
			CleanerID:                 f.cleanerID,
			Address:                   "12 Tverskaya St, apt 4",
			Location:                  f.location,
			ScheduledAt:               baseTime,
			ContractedDurationMinutes: 120,
			HourlyRateCredits:         50,
			State:                     job.InProgress,
			SubState:                  job.SubStateExtraTimeRequested,
			CheckInAt:                 &checkIn,
			StartAt:                   &start,
			MaxBillableMinutes:        120,
			MaxBillableCredits:        100,
			RequestedExtraMinutes:     30,
			Version:                   7,
		})

		require.NoError(t, err)
		assert.Equal(t, job.InProgress, restored.State())
		assert.Equal(t, job.SubStateExtraTimeRequested, restored.SubState())
		assert.Equal(t, 30, restored.RequestedExtraMinutes())
		assert.Equal(t, 7, restored.Version())
		assert.True(t, f.job.IsEqual(restored))

		// Restored aggregates keep enforcing the rules.
		err = restored.ResolveExtraTime(f.clientID, true, 30)
		require.NoError(t, err)
		assert.Equal(t, 30, restored.ApprovedExtraMinutes())
	})

	t.Run("rejects invalid state", func(t *testing.T) {
		f := newFixture(t)

		_, err := job.RestoreJob(job.RestoreSnapshot{
			ID:                        f.job.ID(),
			ClientID:                  f.clientID,
			CleanerID:                 f.cleanerID,
			Address:                   "addr",
			Location:                  f.location,
			ScheduledAt:               baseTime,
			ContractedDurationMinutes: 120,
			HourlyRateCredits:         50,
			State:                     job.Unknown,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}
