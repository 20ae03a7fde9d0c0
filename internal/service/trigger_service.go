package service

import (
	"log"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

// SettingsOrDefault parses a workflow's settings, falling back to the
// zero value on a malformed document. Zero-value settings carry an empty
// service-type list, so the workflow matches nothing instead of aborting
// the batch.
func SettingsOrDefault(wf *model.Workflow) model.WorkflowSettings {
	settings, err := wf.ParseSettings()
	if err != nil {
		log.Printf("bad settings for workflow %d (%s), skipping match: %v", wf.ID, wf.Name, err)
		return model.WorkflowSettings{}
	}
	return settings
}

// MatchesEvent applies the trigger selection rule: the workflow's
// service-type filter must include the event's service type, and immediate
// booking confirmations never fire for recurring occurrences (those run
// through the recurring series resolver instead).
func MatchesEvent(wf *model.Workflow, settings model.WorkflowSettings, event *model.Event) bool {
	if !settings.MatchesServiceType(event.ServiceTypeID) {
		return false
	}
	if wf.Trigger == model.TriggerAppointmentBooked && event.IsRecurring() {
		return false
	}
	return true
}

// ResolveFireTime computes the absolute fire time for a time-offset
// trigger. Days shift via calendar arithmetic, hours and minutes as plain
// durations, matching how the offsets behave across month boundaries.
// Returns false for triggers that execute immediately.
func ResolveFireTime(trigger string, interval model.Interval, event *model.Event) (time.Time, bool) {
	switch trigger {
	case model.TriggerTimeBefore:
		return offsetDate(event.StartsAt, -interval.Days, -interval.Hours, -interval.Minutes), true
	case model.TriggerTimeAfter:
		return offsetDate(event.EndsAt, interval.Days, interval.Hours, interval.Minutes), true
	default:
		return time.Time{}, false
	}
}

func offsetDate(t time.Time, days, hours, minutes int) time.Time {
	return t.AddDate(0, 0, days).
		Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}
