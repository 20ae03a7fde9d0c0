package service

import (
	"log"

	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// SeriesContent is the canonical content for one occurrence of a recurring
// series: either freshly generated (first occurrence) or reused verbatim
// from the series record.
type SeriesContent struct {
	Title           string
	Description     string
	SuccessMessage  string
	FirstOccurrence bool
}

// RecurringService decides whether an incoming occurrence belongs to a known
// series. The first occurrence generates and persists the series content and
// fires the immediate booking confirmations; every later occurrence reuses
// the stored content so the series keeps one access code.
type RecurringService struct {
	Recurring repository.RecurringRepositoryInterface
	Workflows repository.WorkflowRepositoryInterface
	Runner    ActionExecutor
}

// Resolve returns the content for this occurrence. customerCode is the code
// generated for the event; it is only used when this turns out to be the
// series' first occurrence.
func (s *RecurringService) Resolve(event *model.Event, customerCode string) (SeriesContent, error) {
	prev, err := s.Recurring.PreviousOccurrence(event.RecurringEventID, event.CustomerID, event.CreatedAt)
	if err != nil {
		return SeriesContent{}, err
	}
	if prev != nil {
		log.Printf("reusing series content for %s/%s", event.RecurringEventID, event.CustomerID)
		return SeriesContent{
			Title:          prev.Title,
			Description:    prev.Description,
			SuccessMessage: prev.SuccessMessage,
		}, nil
	}

	title := GenerateEventTitle(event.Title, customerCode)
	description := GenerateEventDescription(customerCode)

	inserted, err := s.Recurring.Store(&model.RecurringSeriesRecord{
		SeriesID:       event.RecurringEventID,
		CustomerID:     event.CustomerID,
		Title:          title,
		Description:    description,
		SuccessMessage: description,
		EventCreatedAt: event.CreatedAt,
	})
	if err != nil {
		return SeriesContent{}, err
	}
	if !inserted {
		// A concurrent occurrence won the insert; behave like a later one.
		existing, err := s.Recurring.FirstOccurrence(event.RecurringEventID, event.CustomerID)
		if err != nil {
			return SeriesContent{}, err
		}
		if existing != nil {
			return SeriesContent{
				Title:          existing.Title,
				Description:    existing.Description,
				SuccessMessage: existing.SuccessMessage,
			}, nil
		}
	}

	s.runFirstOccurrenceActions(event, title, description, customerCode)

	return SeriesContent{
		Title:           title,
		Description:     description,
		SuccessMessage:  description,
		FirstOccurrence: true,
	}, nil
}

// runFirstOccurrenceActions fires the booking confirmations for the series'
// first occurrence. The generic trigger matcher excludes recurring events
// from the immediate path, so email and sms booked actions run here instead;
// webhook actions are left to the recurring webhook path.
func (s *RecurringService) runFirstOccurrenceActions(event *model.Event, title, description, customerCode string) {
	workflows, err := s.Workflows.ListByCompanyAndTriggers(event.CompanyID, []string{model.TriggerAppointmentBooked})
	if err != nil {
		log.Println("error listing workflows for first occurrence:", err)
		return
	}

	for _, wf := range workflows {
		if wf.Action != model.ActionEmail && wf.Action != model.ActionSms {
			continue
		}
		settings := SettingsOrDefault(wf)
		if !settings.MatchesServiceType(event.ServiceTypeID) {
			continue
		}

		log.Printf("executing %s action for first occurrence of series %s: %s", wf.Action, event.RecurringEventID, wf.Name)
		occurrence := *event
		occurrence.Title = title
		occurrence.Description = description
		occurrence.SuccessMessage = description
		occurrence.CustomerCode = customerCode
		s.Runner.Run(wf, &occurrence)
	}
}

// PreviousCustomerCode pulls the access code out of the previous
// occurrence's stored title. Returns "" when there is no previous occurrence
// or its title carries no code.
func (s *RecurringService) PreviousCustomerCode(event *model.Event) (string, error) {
	prev, err := s.Recurring.PreviousOccurrence(event.RecurringEventID, event.CustomerID, event.CreatedAt)
	if err != nil || prev == nil {
		return "", err
	}
	return ExtractCustomerCode(prev.Title), nil
}
