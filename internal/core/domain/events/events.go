package events

import (
	"time"

	"cleaning/internal/core/domain/model/kernel"
)

// Kind is the wire name of a domain event.
type Kind string

const (
	KindJobOffered          Kind = "job_offered"
	KindJobAssigned         Kind = "job_assigned"
	KindCleanerEnRoute      Kind = "cleaner_en_route"
	KindCleanerArrived      Kind = "cleaner_arrived"
	KindJobStarted          Kind = "job_started"
	KindPhotoUploaded       Kind = "photo_uploaded"
	KindExtraTimeRequested  Kind = "extra_time_requested"
	KindExtraTimeApproved   Kind = "extra_time_approved"
	KindExtraTimeDenied     Kind = "extra_time_denied"
	KindJobCompleted        Kind = "job_completed"
	KindClientApproved      Kind = "client_approved"
	KindDisputeOpened       Kind = "dispute_opened"
	KindDisputeResolved     Kind = "dispute_resolved"
	KindJobCancelled        Kind = "job_cancelled"
	KindRescheduleRequested Kind = "reschedule_requested"
	KindVisitReminderDue    Kind = "visit_reminder_due"
)

// AllKinds returns every event kind. Subscribers that want the full stream
// (the notification orchestrator, metrics) register for each of these.
func AllKinds() []Kind {
	return []Kind{
		KindJobOffered, KindJobAssigned, KindCleanerEnRoute, KindCleanerArrived,
		KindJobStarted, KindPhotoUploaded, KindExtraTimeRequested,
		KindExtraTimeApproved, KindExtraTimeDenied, KindJobCompleted,
		KindClientApproved, KindDisputeOpened, KindDisputeResolved,
		KindJobCancelled, KindRescheduleRequested, KindVisitReminderDue,
	}
}

// DomainEvent is one immutable fact about a job's lifecycle. Events are
// published after the producing transition has been committed; handlers can
// observe but never veto them.
type DomainEvent interface {
	// Kind returns the wire name of the event.
	Kind() Kind
	// JobID returns the job the event is about.
	JobID() kernel.UUID
	// ClientID returns the booking client of the job.
	ClientID() kernel.UUID
	// CleanerID returns the cleaner the job was offered to.
	CleanerID() kernel.UUID
	// OccurredAt returns when the event was produced.
	OccurredAt() time.Time
	// IsUrgent reports whether delivery bypasses channel preferences.
	IsUrgent() bool
}

// base carries the fields shared by every event. Both participants ride on
// the event so subscribers can resolve recipients without loading the job.
type base struct {
	jobID     kernel.UUID
	clientID  kernel.UUID
	cleanerID kernel.UUID
	at        time.Time
}

func newBase(jobID, clientID, cleanerID kernel.UUID, at time.Time) base {
	return base{jobID: jobID, clientID: clientID, cleanerID: cleanerID, at: at.UTC()}
}

func (b base) JobID() kernel.UUID     { return b.jobID }
func (b base) ClientID() kernel.UUID  { return b.clientID }
func (b base) CleanerID() kernel.UUID { return b.cleanerID }
func (b base) OccurredAt() time.Time  { return b.at }
func (b base) IsUrgent() bool         { return false }

// JobOffered is published when a new job is offered to a cleaner.
type JobOffered struct {
	base
	address     string
	scheduledAt time.Time
}

// NewJobOffered creates a JobOffered event.
func NewJobOffered(jobID, clientID, cleanerID kernel.UUID, address string, scheduledAt, at time.Time) JobOffered {
	return JobOffered{
		base:        newBase(jobID, clientID, cleanerID, at),
		address:     address,
		scheduledAt: scheduledAt.UTC(),
	}
}

func (e JobOffered) Kind() Kind             { return KindJobOffered }
func (e JobOffered) Address() string        { return e.address }
func (e JobOffered) ScheduledAt() time.Time { return e.scheduledAt }

// JobAssigned is published when the cleaner accepts the offer.
type JobAssigned struct{ base }

// NewJobAssigned creates a JobAssigned event.
func NewJobAssigned(jobID, clientID, cleanerID kernel.UUID, at time.Time) JobAssigned {
	return JobAssigned{base: newBase(jobID, clientID, cleanerID, at)}
}

func (e JobAssigned) Kind() Kind { return KindJobAssigned }

// CleanerEnRoute is published when the cleaner starts travelling.
type CleanerEnRoute struct{ base }

// NewCleanerEnRoute creates a CleanerEnRoute event.
func NewCleanerEnRoute(jobID, clientID, cleanerID kernel.UUID, at time.Time) CleanerEnRoute {
	return CleanerEnRoute{base: newBase(jobID, clientID, cleanerID, at)}
}

func (e CleanerEnRoute) Kind() Kind { return KindCleanerEnRoute }

// CleanerArrived is published on a successful geofenced check-in.
type CleanerArrived struct{ base }

// NewCleanerArrived creates a CleanerArrived event.
func NewCleanerArrived(jobID, clientID, cleanerID kernel.UUID, at time.Time) CleanerArrived {
	return CleanerArrived{base: newBase(jobID, clientID, cleanerID, at)}
}

func (e CleanerArrived) Kind() Kind { return KindCleanerArrived }

// JobStarted is published when the visit begins and the billable ceiling is
// frozen.
type JobStarted struct {
	base
	maxBillableMinutes int
	maxBillableCredits int
}

// NewJobStarted creates a JobStarted event.
func NewJobStarted(jobID, clientID, cleanerID kernel.UUID, maxBillableMinutes, maxBillableCredits int, at time.Time) JobStarted {
	return JobStarted{
		base:               newBase(jobID, clientID, cleanerID, at),
		maxBillableMinutes: maxBillableMinutes,
		maxBillableCredits: maxBillableCredits,
	}
}

func (e JobStarted) Kind() Kind              { return KindJobStarted }
func (e JobStarted) MaxBillableMinutes() int { return e.maxBillableMinutes }
func (e JobStarted) MaxBillableCredits() int { return e.maxBillableCredits }

// PhotoUploaded is published when the cleaner uploads a before/after photo.
type PhotoUploaded struct {
	base
	photoKind string
	count     int
}

// NewPhotoUploaded creates a PhotoUploaded event. photoKind is "before" or
// "after"; count is the running total for that kind.
func NewPhotoUploaded(jobID, clientID, cleanerID kernel.UUID, photoKind string, count int, at time.Time) PhotoUploaded {
	return PhotoUploaded{
		base:      newBase(jobID, clientID, cleanerID, at),
		photoKind: photoKind,
		count:     count,
	}
}

func (e PhotoUploaded) Kind() Kind        { return KindPhotoUploaded }
func (e PhotoUploaded) PhotoKind() string { return e.photoKind }
func (e PhotoUploaded) Count() int        { return e.count }

// ExtraTimeRequested is published when the cleaner asks for additional
// billable time. It is urgent: the client must decide while the visit is
// still running, so SMS and push go out regardless of stored preferences.
type ExtraTimeRequested struct {
	base
	requestedMinutes int
}

// NewExtraTimeRequested creates an ExtraTimeRequested event.
func NewExtraTimeRequested(jobID, clientID, cleanerID kernel.UUID, requestedMinutes int, at time.Time) ExtraTimeRequested {
	return ExtraTimeRequested{
		base:             newBase(jobID, clientID, cleanerID, at),
		requestedMinutes: requestedMinutes,
	}
}

func (e ExtraTimeRequested) Kind() Kind            { return KindExtraTimeRequested }
func (e ExtraTimeRequested) RequestedMinutes() int { return e.requestedMinutes }
func (e ExtraTimeRequested) IsUrgent() bool        { return true }

// ExtraTimeApproved is published when the client approves extra time.
type ExtraTimeApproved struct {
	base
	approvedMinutes int
}

// NewExtraTimeApproved creates an ExtraTimeApproved event.
func NewExtraTimeApproved(jobID, clientID, cleanerID kernel.UUID, approvedMinutes int, at time.Time) ExtraTimeApproved {
	return ExtraTimeApproved{
		base:            newBase(jobID, clientID, cleanerID, at),
		approvedMinutes: approvedMinutes,
	}
}

func (e ExtraTimeApproved) Kind() Kind           { return KindExtraTimeApproved }
func (e ExtraTimeApproved) ApprovedMinutes() int { return e.approvedMinutes }

// ExtraTimeDenied is published when the client denies extra time.
type ExtraTimeDenied struct{ base }

// NewExtraTimeDenied creates an ExtraTimeDenied event.
func NewExtraTimeDenied(jobID, clientID, cleanerID kernel.UUID, at time.Time) ExtraTimeDenied {
	return ExtraTimeDenied{base: newBase(jobID, clientID, cleanerID, at)}
}

func (e ExtraTimeDenied) Kind() Kind { return KindExtraTimeDenied }

// JobCompleted is published when the visit finishes and the billing snapshot
// is computed.
type JobCompleted struct {
	base
	actualMinutes   int
	billableMinutes int
	billableCredits int
}

// NewJobCompleted creates a JobCompleted event.
func NewJobCompleted(jobID, clientID, cleanerID kernel.UUID, actualMinutes, billableMinutes, billableCredits int, at time.Time) JobCompleted {
	return JobCompleted{
		base:            newBase(jobID, clientID, cleanerID, at),
		actualMinutes:   actualMinutes,
		billableMinutes: billableMinutes,
		billableCredits: billableCredits,
	}
}

func (e JobCompleted) Kind() Kind           { return KindJobCompleted }
func (e JobCompleted) ActualMinutes() int   { return e.actualMinutes }
func (e JobCompleted) BillableMinutes() int { return e.billableMinutes }
func (e JobCompleted) BillableCredits() int { return e.billableCredits }

// ClientApproved is published when the client approves the completed work.
type ClientApproved struct{ base }

// NewClientApproved creates a ClientApproved event.
func NewClientApproved(jobID, clientID, cleanerID kernel.UUID, at time.Time) ClientApproved {
	return ClientApproved{base: newBase(jobID, clientID, cleanerID, at)}
}

func (e ClientApproved) Kind() Kind { return KindClientApproved }

// DisputeOpened is published when the client contests the completed work.
type DisputeOpened struct {
	base
	reason string
}

// NewDisputeOpened creates a DisputeOpened event.
func NewDisputeOpened(jobID, clientID, cleanerID kernel.UUID, reason string, at time.Time) DisputeOpened {
	return DisputeOpened{base: newBase(jobID, clientID, cleanerID, at), reason: reason}
}

func (e DisputeOpened) Kind() Kind     { return KindDisputeOpened }
func (e DisputeOpened) Reason() string { return e.reason }

// DisputeResolved is published when a dispute closes or escalates.
type DisputeResolved struct {
	base
	escalated bool
}

// NewDisputeResolved creates a DisputeResolved event.
func NewDisputeResolved(jobID, clientID, cleanerID kernel.UUID, escalated bool, at time.Time) DisputeResolved {
	return DisputeResolved{base: newBase(jobID, clientID, cleanerID, at), escalated: escalated}
}

func (e DisputeResolved) Kind() Kind      { return KindDisputeResolved }
func (e DisputeResolved) Escalated() bool { return e.escalated }

// JobCancelled is published when either participant cancels the job, or when
// a stale offer expires. Cancellation is urgent: the affected parties need
// to know immediately, so SMS and push bypass stored preferences.
type JobCancelled struct {
	base
	actorID kernel.UUID
	reason  string
	system  bool
}

// NewJobCancelled creates a JobCancelled event for a cancellation made by
// one of the participants.
func NewJobCancelled(jobID, clientID, cleanerID, actorID kernel.UUID, reason string, at time.Time) JobCancelled {
	return JobCancelled{
		base:    newBase(jobID, clientID, cleanerID, at),
		actorID: actorID,
		reason:  reason,
	}
}

// NewSystemJobCancelled creates a JobCancelled event for a cancellation made
// by the platform itself, such as a stale offer expiring. There is no acting
// participant, so both parties hear about it.
func NewSystemJobCancelled(jobID, clientID, cleanerID kernel.UUID, reason string, at time.Time) JobCancelled {
	return JobCancelled{
		base:   newBase(jobID, clientID, cleanerID, at),
		reason: reason,
		system: true,
	}
}

func (e JobCancelled) Kind() Kind              { return KindJobCancelled }
func (e JobCancelled) ActorID() kernel.UUID    { return e.actorID }
func (e JobCancelled) Reason() string          { return e.reason }
func (e JobCancelled) IsUrgent() bool          { return true }
func (e JobCancelled) IsSystemInitiated() bool { return e.system }

// RescheduleRequested is published when a participant asks to move the
// visit. The job itself never changes.
type RescheduleRequested struct {
	base
	actorID kernel.UUID
}

// NewRescheduleRequested creates a RescheduleRequested event.
func NewRescheduleRequested(jobID, clientID, cleanerID, actorID kernel.UUID, at time.Time) RescheduleRequested {
	return RescheduleRequested{base: newBase(jobID, clientID, cleanerID, at), actorID: actorID}
}

func (e RescheduleRequested) Kind() Kind           { return KindRescheduleRequested }
func (e RescheduleRequested) ActorID() kernel.UUID { return e.actorID }

// VisitReminderDue is published by the reminder job for assigned visits
// starting soon.
type VisitReminderDue struct {
	base
	scheduledAt time.Time
}

// NewVisitReminderDue creates a VisitReminderDue event.
func NewVisitReminderDue(jobID, clientID, cleanerID kernel.UUID, scheduledAt, at time.Time) VisitReminderDue {
	return VisitReminderDue{base: newBase(jobID, clientID, cleanerID, at), scheduledAt: scheduledAt.UTC()}
}

func (e VisitReminderDue) Kind() Kind             { return KindVisitReminderDue }
func (e VisitReminderDue) ScheduledAt() time.Time { return e.scheduledAt }
