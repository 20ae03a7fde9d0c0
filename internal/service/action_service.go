package service

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/channel"
	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// Placeholder defaults for events with no service title or description.
const (
	DefaultEventTitle       = "The Golf Session"
	DefaultEventDescription = "Enjoy a day on the green!"
)

// Outcome statuses. "error" marks configuration or validation problems
// that must not be retried; "failure" marks a run with nothing delivered.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeError   = "error"
)

// DeliveryResult is one recipient's outcome inside an action run.
type DeliveryResult struct {
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// ActionOutcome reports one workflow action run against one event. Partial
// failure across recipients is still an overall success; per-recipient
// status lives in Results.
type ActionOutcome struct {
	Status  string           `json:"status"`
	Message string           `json:"message,omitempty"`
	Results []DeliveryResult `json:"results,omitempty"`
}

// ActionExecutor runs one workflow action against one event snapshot.
type ActionExecutor interface {
	Run(wf *model.Workflow, event *model.Event) ActionOutcome
}

// ActionRunner dispatches a workflow's action over its channel, writes one
// action log and one sent record per delivery attempt, and captures failed
// deliveries for the redrive sweep.
type ActionRunner struct {
	Audit      repository.AuditRepositoryInterface
	Failed     repository.FailedDeliveryRepositoryInterface
	Email      channel.EmailSender
	Sms        channel.SmsSender
	Webhook    channel.WebhookSender
	WebhookURL string
}

func (r *ActionRunner) Run(wf *model.Workflow, event *model.Event) ActionOutcome {
	if event.CompanyID == "" {
		log.Printf("missing companyId in event %s", event.ID)
		return ActionOutcome{Status: OutcomeError, Message: "missing companyId"}
	}
	if event.CustomerCode == "" {
		log.Printf("missing customerCode in event %s", event.ID)
		return ActionOutcome{Status: OutcomeError, Message: "missing customerCode"}
	}

	settings, err := wf.ParseSettings()
	if err != nil {
		log.Printf("error parsing settings for workflow %d: %v", wf.ID, err)
		return ActionOutcome{Status: OutcomeError, Message: "error parsing settings"}
	}

	values := placeholderValues(event)

	switch wf.Action {
	case model.ActionEmail:
		return r.runEmail(wf, settings, event, values)
	case model.ActionSms:
		return r.runSms(wf, settings, event, values)
	case model.ActionWebhook:
		return r.runWebhook(wf, event, values)
	default:
		log.Println("action not implemented:", wf.Action)
		return ActionOutcome{Status: OutcomeError, Message: "action not implemented: " + wf.Action}
	}
}

func placeholderValues(event *model.Event) map[string]string {
	title := event.Title
	if title == "" {
		title = DefaultEventTitle
	}
	description := event.Description
	if description == "" {
		description = DefaultEventDescription
	}
	return map[string]string{
		"customerCode":     event.CustomerCode,
		"customerEmail":    event.CustomerEmail,
		"customerName":     event.CustomerName,
		"customerPhone":    event.CustomerPhone,
		"eventTitle":       title,
		"eventDescription": description,
	}
}

func (r *ActionRunner) meta(event *model.Event, values map[string]string) channel.Meta {
	return channel.Meta{
		CustomerID:  event.CustomerID,
		IsRecurring: event.RRule != "",
		ServiceName: values["eventTitle"],
	}
}

func (r *ActionRunner) runEmail(wf *model.Workflow, settings model.WorkflowSettings, event *model.Event, values map[string]string) ActionOutcome {
	if settings.EmailTemplate == nil {
		return ActionOutcome{Status: OutcomeError, Message: "email template not configured"}
	}

	subject := RenderTemplate(settings.EmailTemplate.Subject, values)
	body := RenderTemplate(settings.EmailTemplate.Body, values)
	recipients := SplitRecipients(settings.EmailTemplate.Recipients, values)

	results := make([]DeliveryResult, len(recipients))
	var wg sync.WaitGroup
	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, recipient string) {
			defer wg.Done()
			res := r.Email.Send(recipient, subject, body, r.meta(event, values))
			r.logAttempt(wf, event, model.ActionEmail, res, map[string]string{
				"recipient": recipient,
				"subject":   subject,
				"body":      body,
				"error":     res.Error,
			})
			if res.Status != channel.StatusSuccess {
				r.capture(model.ActionEmail, recipient, map[string]string{"subject": subject, "body": body}, res.Error)
			}
			results[i] = DeliveryResult{Recipient: recipient, Status: res.Status, Error: res.Error}
		}(i, recipient)
	}
	wg.Wait()

	return ActionOutcome{Status: OutcomeSuccess, Results: results}
}

func (r *ActionRunner) runSms(wf *model.Workflow, settings model.WorkflowSettings, event *model.Event, values map[string]string) ActionOutcome {
	if settings.SmsTemplate == nil {
		return ActionOutcome{Status: OutcomeError, Message: "sms template not configured"}
	}

	body := StripHTML(RenderTemplate(settings.SmsTemplate.Body, values))

	// E.164 sanity: anything not starting with + never reaches the gateway.
	recipients := []string{}
	for _, recipient := range SplitRecipients(settings.SmsTemplate.Recipients, values) {
		if strings.HasPrefix(recipient, "+") {
			recipients = append(recipients, recipient)
		}
	}
	if len(recipients) == 0 {
		return ActionOutcome{Status: OutcomeFailure, Message: "No valid recipients found"}
	}

	results := make([]DeliveryResult, len(recipients))
	var wg sync.WaitGroup
	for i, recipient := range recipients {
		wg.Add(1)
		go func(i int, recipient string) {
			defer wg.Done()
			res := r.Sms.Send(recipient, body, r.meta(event, values))
			r.logAttempt(wf, event, model.ActionSms, res, map[string]string{
				"recipient": recipient,
				"body":      body,
				"error":     res.Error,
			})
			if res.Status != channel.StatusSuccess {
				r.capture(model.ActionSms, recipient, map[string]string{"body": body}, res.Error)
			}
			results[i] = DeliveryResult{Recipient: recipient, Status: res.Status, Error: res.Error}
		}(i, recipient)
	}
	wg.Wait()

	return ActionOutcome{Status: OutcomeSuccess, Results: results}
}

func (r *ActionRunner) runWebhook(wf *model.Workflow, event *model.Event, values map[string]string) ActionOutcome {
	payload := WebhookPayload(event, values)

	res := r.Webhook.Send(r.WebhookURL, payload)
	r.logAttempt(wf, event, model.ActionWebhook, res, map[string]any{
		"url":     r.WebhookURL,
		"payload": payload,
		"error":   res.Error,
	})
	if res.Status != channel.StatusSuccess {
		r.capture(model.ActionWebhook, r.WebhookURL, payload, res.Error)
	}

	return ActionOutcome{
		Status:  OutcomeSuccess,
		Results: []DeliveryResult{{Recipient: r.WebhookURL, Status: res.Status, Error: res.Error}},
	}
}

// logAttempt writes the action log row and the sent record for one attempt,
// regardless of the attempt's outcome.
func (r *ActionRunner) logAttempt(wf *model.Workflow, event *model.Event, actionType string, res channel.Result, details any) {
	status := model.StatusSuccess
	if res.Status != channel.StatusSuccess {
		status = model.StatusFailure
	}
	if err := r.Audit.LogAction(event.ID, wf.ID, event.CompanyID, actionType, status, details); err != nil {
		log.Println("error logging action:", err)
	}
	if err := r.Audit.AddToSent(wf, event, time.Now()); err != nil {
		log.Println("error writing sent record:", err)
	}
}

func (r *ActionRunner) capture(channelName, destination string, payload any, deliveryErr string) {
	if r.Failed == nil {
		return
	}
	if err := r.Failed.Capture(channelName, destination, payload, deliveryErr); err != nil {
		log.Println("error capturing failed delivery:", err)
	}
}

var _ ActionExecutor = (*ActionRunner)(nil)
