package notify

import (
	"fmt"

	"cleaning/internal/core/domain/events"
)

// render produces the user-facing title and body for an event. The same
// text feeds the in-app record, the email subject/body, the SMS text, and
// the push payload.
func render(event events.DomainEvent) (title, body string) {
	switch e := event.(type) {
	case events.JobOffered:
		return "New job offer",
			fmt.Sprintf("You have been offered a cleaning job at %s on %s.",
				e.Address(), e.ScheduledAt().Format("Mon, 2 Jan 15:04"))
	case events.JobAssigned:
		return "Offer accepted",
			"Your cleaner accepted the job and it is now scheduled."
	case events.CleanerEnRoute:
		return "Cleaner on the way",
			"Your cleaner is travelling to the job address."
	case events.CleanerArrived:
		return "Cleaner arrived",
			"Your cleaner checked in at the job address."
	case events.JobStarted:
		return "Visit started",
			fmt.Sprintf("The visit has started. Up to %d minutes are covered by your booking.",
				e.MaxBillableMinutes())
	case events.PhotoUploaded:
		return "Photo uploaded",
			fmt.Sprintf("Your cleaner uploaded a new %s photo.", e.PhotoKind())
	case events.ExtraTimeRequested:
		return "Extra time requested",
			fmt.Sprintf("Your cleaner is asking for %d extra minutes. Please approve or decline while the visit is running.",
				e.RequestedMinutes())
	case events.ExtraTimeApproved:
		return "Extra time approved",
			fmt.Sprintf("The client approved %d extra minutes.", e.ApprovedMinutes())
	case events.ExtraTimeDenied:
		return "Extra time declined",
			"The client declined the extra time request."
	case events.JobCompleted:
		return "Job completed",
			fmt.Sprintf("The visit is finished: %d minutes worked, %d minutes billable (%d credits). Please review and approve.",
				e.ActualMinutes(), e.BillableMinutes(), e.BillableCredits())
	case events.ClientApproved:
		return "Work approved",
			"The client approved the completed work. Payment will be released."
	case events.DisputeOpened:
		return "Work disputed",
			fmt.Sprintf("The client disputed the completed work: %s", e.Reason())
	case events.DisputeResolved:
		if e.Escalated() {
			return "Dispute escalated",
				"The dispute was escalated for manual review. Our team will follow up."
		}
		return "Dispute resolved",
			"The dispute was resolved and the work approved."
	case events.JobCancelled:
		return "Job cancelled",
			fmt.Sprintf("The job was cancelled: %s", e.Reason())
	case events.RescheduleRequested:
		return "Reschedule requested",
			"The other party asked to move the visit. Please agree on a new time."
	case events.VisitReminderDue:
		return "Upcoming visit",
			fmt.Sprintf("Reminder: your cleaning visit starts at %s.",
				e.ScheduledAt().Format("Mon, 2 Jan 15:04"))
	default:
		return "Job update",
			fmt.Sprintf("Your job has a new update: %s.", event.Kind())
	}
}
