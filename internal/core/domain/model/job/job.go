package job

import (
	"errors"
	"fmt"
	"time"

	"cleaning/internal/core/domain/model/kernel"
	"cleaning/internal/pkg/errs"
	"cleaning/internal/pkg/guard"
)

// GeofenceRadiusMeters is the maximum haversine distance between a
// cleaner-supplied GPS fix and the job's registered address for arrival,
// start, and completion transitions. The boundary is inclusive.
const GeofenceRadiusMeters = 250.0

// Domain errors for job operations. Every failed transition surfaces one of
// these enumerable reasons and leaves the aggregate untouched.
var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
	// ErrWrongState is returned when the requested transition is not legal
	// from the job's current state.
	ErrWrongState = errors.New("transition is not allowed from the current state")
	// ErrActorNotAllowed is returned when the caller is not permitted to
	// perform the requested transition on this job.
	ErrActorNotAllowed = errors.New("actor is not allowed to perform this action")
	// ErrOutsideGeofence is returned when a GPS-gated transition is attempted
	// from outside the job's geofence.
	ErrOutsideGeofence = errors.New("location is outside the job geofence")
	// ErrMissingTimestamp is returned when a transition requires an earlier
	// lifecycle timestamp that has not been recorded.
	ErrMissingTimestamp = errors.New("prerequisite timestamp is missing")
	// ErrExtraTimeAlreadyPending is returned when requesting extra time while
	// a previous request is still undecided.
	ErrExtraTimeAlreadyPending = errors.New("an extra time request is already pending")
	// ErrNoExtraTimePending is returned when resolving extra time with no
	// pending request.
	ErrNoExtraTimePending = errors.New("no extra time request is pending")

	// ErrAddressIsRequired is returned when creating a job without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrDurationIsInvalid is returned for non-positive contracted durations.
	ErrDurationIsInvalid = errs.NewValueIsRequiredError("contracted duration minutes")
	// ErrRateIsInvalid is returned for non-positive hourly rates.
	ErrRateIsInvalid = errs.NewValueIsRequiredError("hourly rate credits")
	// ErrScheduledAtIsRequired is returned when creating a job without a
	// scheduled visit time.
	ErrScheduledAtIsRequired = errs.NewValueIsRequiredError("scheduled at")
)

// GeofenceError carries the measured distance for a rejected GPS-gated
// transition. It unwraps to ErrOutsideGeofence.
type GeofenceError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("location is outside the job geofence: %.0fm away, allowed %.0fm",
		e.DistanceMeters, e.RadiusMeters)
}

func (e *GeofenceError) Unwrap() error {
	return ErrOutsideGeofence
}

// PhotoKind distinguishes before-visit and after-visit photo uploads.
type PhotoKind int

const (
	// PhotoBefore is taken before the cleaning work begins.
	PhotoBefore PhotoKind = iota
	// PhotoAfter is taken after the cleaning work finishes.
	PhotoAfter
)

// String returns the photo kind name.
func (k PhotoKind) String() string {
	if k == PhotoAfter {
		return "after"
	}
	return "before"
}

// Job is the aggregate root for one cleaning engagement. It owns the
// authoritative lifecycle state and enforces every transition precondition:
// current state, acting party, geofence proximity, and prerequisite
// timestamps. A transition attempt that fails any precondition mutates
// nothing and returns a specific, enumerable error.
//
// Pricing inputs (contracted duration, hourly rate) are frozen at booking.
// The billable ceiling is computed once at start, and the worked/billable
// minutes once at completion; none of them are ever recomputed.
//
// Job carries an optimistic-concurrency version. The persistence adapter
// rejects stale writes, which closes the lost-update race between two
// concurrent transition attempts on the same job.
type Job struct {
	// id uniquely identifies the job.
	id kernel.UUID
	// clientID references the booking client.
	clientID kernel.UUID
	// cleanerID references the cleaner the job was offered to.
	cleanerID kernel.UUID
	// address is the human-readable booking address, frozen at creation.
	address string
	// location is the registered booking coordinate used for all geofence checks.
	location kernel.GeoPoint
	// scheduledAt is the agreed visit time, frozen at creation.
	scheduledAt time.Time
	// contractedDurationMinutes and hourlyRateCredits are pricing inputs
	// frozen at booking time.
	contractedDurationMinutes int
	hourlyRateCredits         int

	state    State
	subState SubState

	// Lifecycle timestamps, each set exactly once by the transition that
	// produces it. A nil value means the transition has not occurred.
	assignedAt  *time.Time
	enRouteAt   *time.Time
	checkInAt   *time.Time
	startAt     *time.Time
	endAt       *time.Time
	cancelledAt *time.Time

	beforePhotos int
	afterPhotos  int

	// Billing snapshot. maxBillableMinutes/maxBillableCredits are set at
	// start; actualMinutesWorked/billableMinutes at completion.
	maxBillableMinutes    int
	maxBillableCredits    int
	requestedExtraMinutes int
	approvedExtraMinutes  int
	actualMinutesWorked   int
	billableMinutes       int

	cancelReason  string
	disputeReason string

	// reminderSentAt dedupes upcoming-visit reminders.
	reminderSentAt *time.Time

	// version is the optimistic-concurrency token maintained by persistence.
	version int

	guard guard.ConstructorGuard
}

// NewJob creates a job in the Offered state. The address, location,
// scheduled time, and pricing inputs are frozen here and never change.
func NewJob(
	id kernel.UUID,
	clientID kernel.UUID,
	cleanerID kernel.UUID,
	address string,
	location kernel.GeoPoint,
	scheduledAt time.Time,
	contractedDurationMinutes int,
	hourlyRateCredits int,
) (*Job, error) {
	j := &Job{
		state:    Offered,
		subState: SubStateNone,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setClientID(clientID),
		j.setCleanerID(cleanerID),
		j.setAddress(address),
		j.setLocation(location),
		j.setScheduledAt(scheduledAt),
		j.setContractedDuration(contractedDurationMinutes),
		j.setHourlyRate(hourlyRateCredits),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreSnapshot carries every persisted job field for RestoreJob.
// Persistence adapters fill it from their row representation.
type RestoreSnapshot struct {
	ID                        kernel.UUID
	ClientID                  kernel.UUID
	CleanerID                 kernel.UUID
	Address                   string
	Location                  kernel.GeoPoint
	ScheduledAt               time.Time
	ContractedDurationMinutes int
	HourlyRateCredits         int
	State                     State
	SubState                  SubState
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
	CancelReason              string
	DisputeReason             string
	ReminderSentAt            *time.Time
	Version                   int
}

// RestoreJob reconstructs a Job aggregate from persistent storage.
// Unlike NewJob it accepts any valid lifecycle state and the persisted
// version token.
func RestoreJob(s RestoreSnapshot) (*Job, error) {
	j := &Job{
		subState:              s.SubState,
		assignedAt:            s.AssignedAt,
		enRouteAt:             s.EnRouteAt,
		checkInAt:             s.CheckInAt,
		startAt:               s.StartAt,
		endAt:                 s.EndAt,
		cancelledAt:           s.CancelledAt,
		beforePhotos:          s.BeforePhotos,
		afterPhotos:           s.AfterPhotos,
		maxBillableMinutes:    s.MaxBillableMinutes,
		maxBillableCredits:    s.MaxBillableCredits,
		requestedExtraMinutes: s.RequestedExtraMinutes,
		approvedExtraMinutes:  s.ApprovedExtraMinutes,
		actualMinutesWorked:   s.ActualMinutesWorked,
		billableMinutes:       s.BillableMinutes,
		cancelReason:          s.CancelReason,
		disputeReason:         s.DisputeReason,
		reminderSentAt:        s.ReminderSentAt,
		version:               s.Version,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(s.ID),
		j.setClientID(s.ClientID),
		j.setCleanerID(s.CleanerID),
		j.setAddress(s.Address),
		j.setLocation(s.Location),
		j.setScheduledAt(s.ScheduledAt),
		j.setContractedDuration(s.ContractedDurationMinutes),
		j.setHourlyRate(s.HourlyRateCredits),
		s.State.Validate(),
	); err != nil {
		return nil, err
	}

	j.state = s.State
	return j, nil
}

// Validate ensures the Job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// Accessors.

// ID returns the job identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// ClientID returns the booking client identifier.
func (j *Job) ClientID() kernel.UUID { return j.clientID }

// CleanerID returns the identifier of the cleaner the job was offered to.
func (j *Job) CleanerID() kernel.UUID { return j.cleanerID }

// Address returns the booking address.
func (j *Job) Address() string { return j.address }

// Location returns the registered booking coordinate.
func (j *Job) Location() kernel.GeoPoint { return j.location }

// ScheduledAt returns the agreed visit time.
func (j *Job) ScheduledAt() time.Time { return j.scheduledAt }

// ContractedDurationMinutes returns the booked visit length.
func (j *Job) ContractedDurationMinutes() int { return j.contractedDurationMinutes }

// HourlyRateCredits returns the frozen hourly rate.
func (j *Job) HourlyRateCredits() int { return j.hourlyRateCredits }

// State returns the current lifecycle state.
func (j *Job) State() State { return j.state }

// SubState returns the current secondary flag.
func (j *Job) SubState() SubState { return j.subState }

// AssignedAt returns when the offer was accepted, or nil.
func (j *Job) AssignedAt() *time.Time { return j.assignedAt }

// EnRouteAt returns when travel started, or nil.
func (j *Job) EnRouteAt() *time.Time { return j.enRouteAt }

// CheckInAt returns when the cleaner arrived, or nil.
func (j *Job) CheckInAt() *time.Time { return j.checkInAt }

// StartAt returns when the visit started, or nil.
func (j *Job) StartAt() *time.Time { return j.startAt }

// EndAt returns when the visit finished, or nil.
func (j *Job) EndAt() *time.Time { return j.endAt }

// CancelledAt returns when the job was cancelled, or nil.
func (j *Job) CancelledAt() *time.Time { return j.cancelledAt }

// BeforePhotos returns the count of before-visit photos.
func (j *Job) BeforePhotos() int { return j.beforePhotos }

// AfterPhotos returns the count of after-visit photos.
func (j *Job) AfterPhotos() int { return j.afterPhotos }

// MaxBillableMinutes returns the contractual ceiling set at start.
func (j *Job) MaxBillableMinutes() int { return j.maxBillableMinutes }

// MaxBillableCredits returns the credit ceiling set at start.
func (j *Job) MaxBillableCredits() int { return j.maxBillableCredits }

// RequestedExtraMinutes returns the pending extra-time request, if any.
func (j *Job) RequestedExtraMinutes() int { return j.requestedExtraMinutes }

// ApprovedExtraMinutes returns the total approved extra time.
func (j *Job) ApprovedExtraMinutes() int { return j.approvedExtraMinutes }

// ActualMinutesWorked returns the worked minutes computed at completion.
func (j *Job) ActualMinutesWorked() int { return j.actualMinutesWorked }

// BillableMinutes returns the billable minutes computed at completion.
func (j *Job) BillableMinutes() int { return j.billableMinutes }

// BillableCredits returns the credit value of the billable minutes at the
// frozen hourly rate.
func (j *Job) BillableCredits() int { return creditsForMinutes(j.billableMinutes, j.hourlyRateCredits) }

// CancelReason returns the recorded cancellation reason.
func (j *Job) CancelReason() string { return j.cancelReason }

// DisputeReason returns the recorded dispute reason.
func (j *Job) DisputeReason() string { return j.disputeReason }

// ReminderSentAt returns when the upcoming-visit reminder went out, or nil.
func (j *Job) ReminderSentAt() *time.Time { return j.reminderSentAt }

// Version returns the optimistic-concurrency token loaded from persistence.
func (j *Job) Version() int { return j.version }

// IsEqual compares two jobs by identifier.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// Transitions.

// Accept moves Offered -> Assigned. Only the cleaner the job was offered to
// may accept it. Records assignedAt.
func (j *Job) Accept(actorID kernel.UUID, at time.Time) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	newState, err := j.state.Accept()
	if err != nil {
		return err
	}

	j.state = newState
	j.assignedAt = timestamp(at)
	return nil
}

// MarkEnRoute moves Assigned -> EnRoute. Records enRouteAt.
func (j *Job) MarkEnRoute(actorID kernel.UUID, at time.Time) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	newState, err := j.state.MarkEnRoute()
	if err != nil {
		return err
	}

	j.state = newState
	j.enRouteAt = timestamp(at)
	return nil
}

// MarkArrived moves EnRoute -> Arrived. The supplied GPS fix must lie within
// the geofence of the registered address; the rejection carries the measured
// distance and records no transition. Records checkInAt.
func (j *Job) MarkArrived(actorID kernel.UUID, at time.Time, fix kernel.GeoPoint) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	newState, err := j.state.Arrive()
	if err != nil {
		return err
	}

	if err := j.requireWithinGeofence(fix); err != nil {
		return err
	}

	j.state = newState
	j.checkInAt = timestamp(at)
	return nil
}

// Start moves Arrived -> InProgress. Repeats the geofence check at start
// time and requires checkInAt to already be recorded. Records startAt and
// freezes the billable ceiling: maxBillableMinutes is the contracted
// duration, maxBillableCredits its value at the frozen hourly rate. The
// ceiling only moves later through an approved extra-time request.
func (j *Job) Start(actorID kernel.UUID, at time.Time, fix kernel.GeoPoint) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	newState, err := j.state.Start()
	if err != nil {
		return err
	}

	if j.checkInAt == nil {
		return fmt.Errorf("%w: checkInAt", ErrMissingTimestamp)
	}

	if err := j.requireWithinGeofence(fix); err != nil {
		return err
	}

	j.state = newState
	j.startAt = timestamp(at)
	j.maxBillableMinutes = j.contractedDurationMinutes
	j.maxBillableCredits = creditsForMinutes(j.maxBillableMinutes, j.hourlyRateCredits)
	return nil
}

// Complete moves InProgress -> AwaitingClientReview. Requires checkInAt and
// startAt, repeats the geofence check at completion, and computes the
// billing snapshot: actualMinutesWorked from the start/end timestamps and
// billableMinutes capped at the ceiling adjusted for approved extra time.
func (j *Job) Complete(actorID kernel.UUID, at time.Time, fix kernel.GeoPoint) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	newState, err := j.state.Complete()
	if err != nil {
		return err
	}

	if j.checkInAt == nil {
		return fmt.Errorf("%w: checkInAt", ErrMissingTimestamp)
	}
	if j.startAt == nil {
		return fmt.Errorf("%w: startAt", ErrMissingTimestamp)
	}

	if err := j.requireWithinGeofence(fix); err != nil {
		return err
	}

	end := at.UTC()
	j.state = newState
	j.endAt = &end
	j.actualMinutesWorked = workedMinutes(*j.startAt, end)
	j.billableMinutes = billableMinutes(j.actualMinutesWorked, j.maxBillableMinutes, j.approvedExtraMinutes)
	return nil
}

// Cancel moves any non-terminal state except UnderReview -> Cancelled.
// Either participant may cancel. Records the reason and cancelledAt.
func (j *Job) Cancel(actorID kernel.UUID, at time.Time, reason string) error {
	if err := j.requireParticipant(actorID); err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	newState, err := j.state.Cancel()
	if err != nil {
		return err
	}

	j.state = newState
	j.cancelReason = reason
	j.cancelledAt = timestamp(at)
	return nil
}

// AddPhoto increments the before/after photo counter. Uploads are permitted
// only while the visit is in progress and never change state.
func (j *Job) AddPhoto(actorID kernel.UUID, kind PhotoKind) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	if j.state != InProgress {
		return fmt.Errorf("%w: cannot upload photos from %s", ErrWrongState, j.state)
	}

	if kind == PhotoAfter {
		j.afterPhotos++
	} else {
		j.beforePhotos++
	}
	return nil
}

// RequestExtraTime flags the job with a pending extra-time request. Only one
// request may be pending at a time, only while in progress, and the flag
// never changes the lifecycle state.
func (j *Job) RequestExtraTime(actorID kernel.UUID, minutes int) error {
	if err := j.requireCleaner(actorID); err != nil {
		return err
	}

	if j.state != InProgress {
		return fmt.Errorf("%w: cannot request extra time from %s", ErrWrongState, j.state)
	}
	if j.subState == SubStateExtraTimeRequested {
		return ErrExtraTimeAlreadyPending
	}
	if minutes <= 0 {
		return errs.NewValueIsRequiredError("extra time minutes")
	}

	j.subState = SubStateExtraTimeRequested
	j.requestedExtraMinutes = minutes
	return nil
}

// ResolveExtraTime records the client's decision on a pending extra-time
// request. Approval raises the billable ceiling by exactly approvedMinutes,
// which may differ from the minutes originally requested. Denial clears the
// flag. Neither outcome changes the lifecycle state.
func (j *Job) ResolveExtraTime(actorID kernel.UUID, approved bool, approvedMinutes int) error {
	if err := j.requireClient(actorID); err != nil {
		return err
	}

	if j.subState != SubStateExtraTimeRequested {
		return ErrNoExtraTimePending
	}
	if j.state != InProgress {
		return fmt.Errorf("%w: cannot resolve extra time from %s", ErrWrongState, j.state)
	}
	if approved && approvedMinutes <= 0 {
		return errs.NewValueIsRequiredError("approved minutes")
	}

	if approved {
		j.approvedExtraMinutes += approvedMinutes
	}
	j.subState = SubStateNone
	j.requestedExtraMinutes = 0
	return nil
}

// ApproveCompletion moves AwaitingClientReview -> CompletedApproved.
// Only the client may approve.
func (j *Job) ApproveCompletion(actorID kernel.UUID) error {
	if err := j.requireClient(actorID); err != nil {
		return err
	}

	newState, err := j.state.Approve()
	if err != nil {
		return err
	}

	j.state = newState
	return nil
}

// OpenDispute moves AwaitingClientReview -> Disputed with a recorded reason.
// Only the client may dispute.
func (j *Job) OpenDispute(actorID kernel.UUID, reason string) error {
	if err := j.requireClient(actorID); err != nil {
		return err
	}

	if reason == "" {
		return errs.NewValueIsRequiredError("dispute reason")
	}

	newState, err := j.state.Dispute()
	if err != nil {
		return err
	}

	j.state = newState
	j.disputeReason = reason
	return nil
}

// ResolveDispute closes a dispute in the cleaner's favour
// (-> CompletedApproved) or escalates it for manual review (-> UnderReview).
// Dispute resolution is an operator decision; any authenticated actor id is
// accepted here since operator authorization lives outside this subsystem.
func (j *Job) ResolveDispute(actorID kernel.UUID, escalate bool) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newState, err := j.state.ResolveDispute(escalate)
	if err != nil {
		return err
	}

	j.state = newState
	return nil
}

// CanRequestReschedule validates a reschedule request: either participant,
// before travel begins. Reschedule requests publish an event but never
// mutate the job.
func (j *Job) CanRequestReschedule(actorID kernel.UUID) error {
	if err := j.requireParticipant(actorID); err != nil {
		return err
	}

	if j.state != Offered && j.state != Assigned {
		return fmt.Errorf("%w: cannot request reschedule from %s", ErrWrongState, j.state)
	}
	return nil
}

// MarkReminderSent records that the upcoming-visit reminder went out so the
// reminder job never sends it twice.
func (j *Job) MarkReminderSent(at time.Time) error {
	if j.reminderSentAt != nil {
		return fmt.Errorf("%w: reminder already sent", ErrWrongState)
	}
	j.reminderSentAt = timestamp(at)
	return nil
}

// Precondition helpers.

func (j *Job) requireCleaner(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !actorID.IsEqual(j.cleanerID) {
		return fmt.Errorf("%w: only the assigned cleaner may do this", ErrActorNotAllowed)
	}
	return nil
}

func (j *Job) requireClient(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !actorID.IsEqual(j.clientID) {
		return fmt.Errorf("%w: only the client may do this", ErrActorNotAllowed)
	}
	return nil
}

func (j *Job) requireParticipant(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !actorID.IsEqual(j.cleanerID) && !actorID.IsEqual(j.clientID) {
		return fmt.Errorf("%w: only the assigned cleaner or the client may do this", ErrActorNotAllowed)
	}
	return nil
}

func (j *Job) requireWithinGeofence(fix kernel.GeoPoint) error {
	distance, err := j.location.DistanceTo(fix)
	if err != nil {
		return err
	}
	if distance > GeofenceRadiusMeters {
		return &GeofenceError{DistanceMeters: distance, RadiusMeters: GeofenceRadiusMeters}
	}
	return nil
}

// Construction setters. Pointer receivers enable self-encapsulated
// validation during object construction.

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("client id: %w", err)
	}
	j.clientID = id
	return nil
}

func (j *Job) setCleanerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("cleaner id: %w", err)
	}
	j.cleanerID = id
	return nil
}

func (j *Job) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	j.address = address
	return nil
}

func (j *Job) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	j.location = location
	return nil
}

func (j *Job) setScheduledAt(at time.Time) error {
	if at.IsZero() {
		return ErrScheduledAtIsRequired
	}
	j.scheduledAt = at.UTC()
	return nil
}

func (j *Job) setContractedDuration(minutes int) error {
	if minutes <= 0 {
		return ErrDurationIsInvalid
	}
	j.contractedDurationMinutes = minutes
	return nil
}

func (j *Job) setHourlyRate(credits int) error {
	if credits <= 0 {
		return ErrRateIsInvalid
	}
	j.hourlyRateCredits = credits
	return nil
}

func timestamp(at time.Time) *time.Time {
	t := at.UTC()
	return &t
}
