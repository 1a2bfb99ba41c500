package job

import "time"

// Billing-time rules. All figures are frozen at the transition that produces
// them and never recomputed from current rates: the contracted duration and
// hourly rate are captured at booking, the billable ceiling at start, and the
// worked/billable minutes at completion (append-only billing snapshot).

// workedMinutes returns the whole minutes between start and end, rounding a
// partial trailing minute up: any started minute counts as worked.
func workedMinutes(start, end time.Time) int {
	elapsed := end.Sub(start)
	if elapsed <= 0 {
		return 0
	}

	minutes := int(elapsed / time.Minute)
	if elapsed%time.Minute > 0 {
		minutes++
	}
	return minutes
}

// billableMinutes caps actual worked minutes at the contractual ceiling plus
// any approved extra time. The ceiling is raised by exactly the approved
// minutes, never by the minutes originally requested.
func billableMinutes(actualMinutes, maxBillable, approvedExtra int) int {
	ceiling := maxBillable + approvedExtra
	if actualMinutes > ceiling {
		return ceiling
	}
	return actualMinutes
}

// creditsForMinutes converts minutes to credits at the frozen hourly rate.
// Integer credit arithmetic truncates toward zero.
func creditsForMinutes(minutes, hourlyRateCredits int) int {
	return minutes * hourlyRateCredits / 60
}
