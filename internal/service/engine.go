package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/booking"
	appErrors "github.com/entroapps/bookingflow-backend/internal/errors"
	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// WorkflowEngine turns one inbound booking event into immediate action runs
// and scheduled tasks: enrich the snapshot, settle the series content,
// push the generated content upstream, then dispatch the company's
// workflows by trigger kind.
type WorkflowEngine struct {
	Workflows repository.WorkflowRepositoryInterface
	Schedule  repository.ScheduleRepositoryInterface
	Recurring *RecurringService
	Runner    ActionExecutor
	Booking   booking.API // optional; enrichment is skipped without it
}

// ProcessEventPayload decodes a queued event snapshot and processes it.
func (e *WorkflowEngine) ProcessEventPayload(payload []byte) error {
	var event model.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return appErrors.NewConfigurationError("malformed event payload: " + err.Error())
	}
	return e.ProcessEvent(&event)
}

func (e *WorkflowEngine) ProcessEvent(event *model.Event) error {
	if event.CompanyID == "" {
		return appErrors.NewValidationError("companyId")
	}

	customerCode := GenerateCustomerCode()
	event.CustomerCode = customerCode
	e.enrichCustomer(event)

	if event.IsRecurring() {
		content, err := e.Recurring.Resolve(event, customerCode)
		if err != nil {
			return err
		}
		event.Title = content.Title
		event.Description = Transliterate(content.Description)
		event.SuccessMessage = Transliterate(content.SuccessMessage)
	} else {
		log.Printf("generating new title and description for event %s", event.ID)
		event.Title = GenerateEventTitle(event.Title, customerCode)
		event.Description = Transliterate(GenerateEventDescription(customerCode))
		event.SuccessMessage = event.Description
	}

	e.pushUpstream(event)

	workflows, err := e.Workflows.ListByCompanyAndTriggers(event.CompanyID, model.Triggers)
	if err != nil {
		return err
	}
	e.dispatch(workflows, event)
	return nil
}

// dispatch routes each matching workflow: booked triggers run now (or, for
// recurring occurrences, schedule ahead of the start and re-fire webhook
// actions with the series' code), time-offset triggers go through the delay
// resolver into the task store. A single bad workflow is skipped, never
// fatal.
func (e *WorkflowEngine) dispatch(workflows []*model.Workflow, event *model.Event) {
	for _, wf := range workflows {
		settings := SettingsOrDefault(wf)
		if !settings.MatchesServiceType(event.ServiceTypeID) {
			continue
		}

		switch wf.Trigger {
		case model.TriggerAppointmentBooked:
			if !event.IsRecurring() {
				log.Printf("executing immediate action for workflow: %s", wf.Name)
				e.Runner.Run(wf, event)
				continue
			}
			if fireAt, ok := ResolveFireTime(model.TriggerTimeBefore, settings.Interval, event); ok {
				e.enqueue(wf, event, fireAt)
			}
			if wf.Action == model.ActionWebhook {
				e.runRecurringWebhook(wf, event)
			}

		case model.TriggerTimeBefore, model.TriggerTimeAfter:
			if fireAt, ok := ResolveFireTime(wf.Trigger, settings.Interval, event); ok {
				e.enqueue(wf, event, fireAt)
			}
		}
	}
}

// runRecurringWebhook re-fires a webhook action for a later occurrence of a
// series, using the access code extracted from the previous occurrence's
// stored title. Without a code the action is skipped, not failed.
func (e *WorkflowEngine) runRecurringWebhook(wf *model.Workflow, event *model.Event) {
	code, err := e.Recurring.PreviousCustomerCode(event)
	if err != nil {
		log.Println("error looking up previous occurrence:", err)
		return
	}
	if code == "" {
		log.Printf("no customer code found in previous occurrence title for series %s, skipping webhook", event.RecurringEventID)
		return
	}

	log.Printf("executing webhook action for recurring event: %s", wf.Name)
	occurrence := *event
	occurrence.CustomerCode = code
	e.Runner.Run(wf, &occurrence)
}

func (e *WorkflowEngine) enqueue(wf *model.Workflow, event *model.Event, fireAt time.Time) {
	id, err := e.Schedule.Enqueue(wf, event, fireAt)
	if err != nil {
		log.Printf("error scheduling workflow %d for event %s: %v", wf.ID, event.ID, err)
		return
	}
	log.Printf("scheduled task %d: workflow %s fires at %s", id, wf.Name, fireAt.Format(time.RFC3339))
}

// enrichCustomer attaches the customer's contact fields from the booking
// platform. Best effort: a lookup failure leaves the snapshot as delivered.
func (e *WorkflowEngine) enrichCustomer(event *model.Event) {
	if e.Booking == nil || event.CustomerID == "" {
		return
	}
	customer, err := e.Booking.GetCustomer(event.CustomerID)
	if err != nil {
		log.Println("error fetching customer details:", err)
		return
	}
	event.CustomerEmail = customer.Email
	event.CustomerPhone = customer.Phone()
	if event.CustomerName == "" {
		event.CustomerName = customer.Name
	}
}

// pushUpstream writes the generated title, description and success message
// back to the booking platform and confirms the event. Best effort.
func (e *WorkflowEngine) pushUpstream(event *model.Event) {
	if e.Booking == nil {
		return
	}
	err := e.Booking.UpdateEvent(event.ID, map[string]any{
		"title":                   event.Title,
		"description":             event.Description,
		"booking_success_message": event.SuccessMessage,
	})
	if err != nil {
		log.Println("error updating event upstream:", err)
		return
	}
	if err := e.Booking.ConfirmEvent(event.ID); err != nil {
		log.Println("error confirming event upstream:", err)
	}
}
