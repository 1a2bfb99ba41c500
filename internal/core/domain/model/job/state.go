package job

import (
	"fmt"

	"cleaning/internal/pkg/errs"
)

// State represents the lifecycle state of a cleaning job.
// It implements a state machine with defined transitions so jobs follow the
// correct operational workflow.
//
// State transitions:
//
//	Offered ──> Assigned ──> EnRoute ──> Arrived ──> InProgress ──> AwaitingClientReview ──┬──> CompletedApproved
//	   │            │           │           │            │                    │            │
//	   │            │           │           │            │                    └──> Disputed ┴──> UnderReview
//	   └────────────┴───────────┴───────────┴────────────┴──> Cancelled   (Disputed also resolves to CompletedApproved)
//
// CompletedApproved and Cancelled are terminal. Cancellation is permitted
// from any non-terminal state except UnderReview.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Offered is the initial state: the job has been offered to a specific
	// cleaner who has not yet accepted it.
	Offered

	// Assigned indicates the offered cleaner accepted the job.
	Assigned

	// EnRoute indicates the cleaner is travelling to the job address.
	EnRoute

	// Arrived indicates the cleaner checked in within the geofence.
	Arrived

	// InProgress indicates the visit has started; photos may be uploaded and
	// extra time requested only in this state.
	InProgress

	// AwaitingClientReview indicates the visit finished and the client has
	// not yet approved or disputed the work.
	AwaitingClientReview

	// CompletedApproved is the terminal happy-path state.
	CompletedApproved

	// Cancelled is the terminal state for abandoned jobs.
	Cancelled

	// Disputed indicates the client contested the completed work.
	Disputed

	// UnderReview indicates an escalated dispute held for manual review.
	// Jobs under review cannot be cancelled.
	UnderReview
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:              "Unknown",
		Offered:              "Offered",
		Assigned:             "Assigned",
		EnRoute:              "EnRoute",
		Arrived:              "Arrived",
		InProgress:           "InProgress",
		AwaitingClientReview: "AwaitingClientReview",
		CompletedApproved:    "CompletedApproved",
		Cancelled:            "Cancelled",
		Disputed:             "Disputed",
		UnderReview:          "UnderReview",
	}
}

// Validate checks that the State value is one of the defined lifecycle
// states. Unknown (0) and any other values are invalid.
func (s State) Validate() error {
	if s < Offered || s > UnderReview {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the state permits no further transitions.
func (s State) IsTerminal() bool {
	return s == CompletedApproved || s == Cancelled
}

// wrongState builds the uniform wrong-source-state transition error.
func (s State) wrongState(transition string) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrWrongState, transition, s)
}

// Accept transitions Offered -> Assigned.
func (s State) Accept() (State, error) {
	if s != Offered {
		return 0, s.wrongState("accept")
	}
	return Assigned, nil
}

// MarkEnRoute transitions Assigned -> EnRoute.
func (s State) MarkEnRoute() (State, error) {
	if s != Assigned {
		return 0, s.wrongState("mark en route")
	}
	return EnRoute, nil
}

// Arrive transitions EnRoute -> Arrived.
// The geofence precondition is enforced by the aggregate, not here.
func (s State) Arrive() (State, error) {
	if s != EnRoute {
		return 0, s.wrongState("mark arrived")
	}
	return Arrived, nil
}

// Start transitions Arrived -> InProgress.
func (s State) Start() (State, error) {
	if s != Arrived {
		return 0, s.wrongState("start")
	}
	return InProgress, nil
}

// Complete transitions InProgress -> AwaitingClientReview.
func (s State) Complete() (State, error) {
	if s != InProgress {
		return 0, s.wrongState("complete")
	}
	return AwaitingClientReview, nil
}

// Cancel transitions any non-terminal state except UnderReview -> Cancelled.
func (s State) Cancel() (State, error) {
	if s.IsTerminal() || s == UnderReview {
		return 0, s.wrongState("cancel")
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return Cancelled, nil
}

// Approve transitions AwaitingClientReview -> CompletedApproved.
func (s State) Approve() (State, error) {
	if s != AwaitingClientReview {
		return 0, s.wrongState("approve")
	}
	return CompletedApproved, nil
}

// Dispute transitions AwaitingClientReview -> Disputed.
func (s State) Dispute() (State, error) {
	if s != AwaitingClientReview {
		return 0, s.wrongState("open dispute")
	}
	return Disputed, nil
}

// ResolveDispute transitions Disputed -> CompletedApproved, or
// Disputed -> UnderReview when the resolution escalates the case.
func (s State) ResolveDispute(escalate bool) (State, error) {
	if s != Disputed {
		return 0, s.wrongState("resolve dispute")
	}
	if escalate {
		return UnderReview, nil
	}
	return CompletedApproved, nil
}

// SubState is a secondary flag for in-flight sub-processes that do not
// themselves change State.
type SubState int

const (
	// SubStateNone means no sub-process is pending.
	SubStateNone SubState = iota

	// SubStateExtraTimeRequested means the cleaner asked the client for
	// additional billable time and the decision is pending.
	SubStateExtraTimeRequested
)

// String returns the human-readable name of the sub-state.
func (s SubState) String() string {
	switch s {
	case SubStateExtraTimeRequested:
		return "ExtraTimeRequested"
	default:
		return "None"
	}
}
