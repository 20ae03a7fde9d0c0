package model

import (
	"encoding/json"
	"time"
)

// Trigger kinds: the booking lifecycle moment a workflow reacts to.
const (
	TriggerAppointmentBooked = "APPOINTMENT_BOOKED"
	TriggerTimeBefore        = "TIME_BEFORE_APPOINTMENT"
	TriggerTimeAfter         = "TIME_AFTER_APPOINTMENT"
)

// Action kinds: the delivery channel a workflow uses.
const (
	ActionEmail   = "email"
	ActionSms     = "sms"
	ActionWebhook = "webhook"
)

// Triggers lists every trigger kind the engine reacts to.
var Triggers = []string{TriggerAppointmentBooked, TriggerTimeBefore, TriggerTimeAfter}

type Workflow struct {
	ID        int        `db:"id" json:"id"`
	CompanyID string     `db:"company_id" json:"company_id"`
	Trigger   string     `db:"trigger" json:"trigger"`
	Action    string     `db:"action" json:"action"`
	Settings  string     `db:"settings" json:"settings"` // JSON document, see WorkflowSettings
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type Interval struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

func (i Interval) IsZero() bool {
	return i.Days == 0 && i.Hours == 0 && i.Minutes == 0
}

type EmailTemplate struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Recipients string `json:"recipients"` // comma separated, may contain placeholders
}

type SmsTemplate struct {
	Body       string `json:"body"`
	Recipients string `json:"recipients"`
}

// WorkflowSettings is the settings column parsed once at the boundary.
type WorkflowSettings struct {
	Interval      Interval       `json:"interval"`
	ServiceTypes  []string       `json:"serviceType"`
	EmailTemplate *EmailTemplate `json:"emailTemplate,omitempty"`
	SmsTemplate   *SmsTemplate   `json:"smsTemplate,omitempty"`
}

// ParseSettings decodes the workflow's settings document. An empty or
// unparseable document is an error; callers that must not abort on a bad
// workflow fall back to zero-value settings, which match no service type.
func (w *Workflow) ParseSettings() (WorkflowSettings, error) {
	var s WorkflowSettings
	if err := json.Unmarshal([]byte(w.Settings), &s); err != nil {
		return WorkflowSettings{}, err
	}
	return s, nil
}

// MatchesServiceType reports whether the parsed settings include the
// event's service type in their filter list.
func (s WorkflowSettings) MatchesServiceType(serviceTypeID string) bool {
	for _, id := range s.ServiceTypes {
		if id == serviceTypeID {
			return true
		}
	}
	return false
}
