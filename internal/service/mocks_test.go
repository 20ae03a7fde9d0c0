package service_test

import (
	"sync"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/channel"
	"github.com/entroapps/bookingflow-backend/internal/model"
)

// Mock repositories and channel senders shared by the service tests.

type loggedAction struct {
	EventID    string
	WorkflowID int
	ActionType string
	Status     string
}

type MockAuditRepo struct {
	mu   sync.Mutex
	Logs []loggedAction
	Sent int
}

func (m *MockAuditRepo) LogAction(eventID string, workflowID int, companyID, actionType, status string, details any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, loggedAction{eventID, workflowID, actionType, status})
	return nil
}

func (m *MockAuditRepo) AddToSent(wf *model.Workflow, event *model.Event, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent++
	return nil
}

func (m *MockAuditRepo) ListLogsByCompany(companyID string) ([]*model.ActionLog, error) {
	return nil, nil
}

func (m *MockAuditRepo) ListSentByCompany(companyID string) ([]*model.SentRecord, error) {
	return nil, nil
}

type capturedDelivery struct {
	Channel     string
	Destination string
	Payload     any
	Error       string
}

type MockFailedRepo struct {
	mu       sync.Mutex
	Captured []capturedDelivery
	Pending  []*model.FailedDelivery
	Deleted  []int
}

func (m *MockFailedRepo) Capture(channelName, destination string, payload any, deliveryErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Captured = append(m.Captured, capturedDelivery{channelName, destination, payload, deliveryErr})
	return nil
}

func (m *MockFailedRepo) ListPending() ([]*model.FailedDelivery, error) {
	return m.Pending, nil
}

func (m *MockFailedRepo) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, id)
	return nil
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

type MockEmailSender struct {
	mu     sync.Mutex
	Sent   []sentEmail
	FailTo string // recipient that fails, "" for none
}

func (m *MockEmailSender) Send(to, subject, body string, meta channel.Meta) channel.Result {
	m.mu.Lock()
	m.Sent = append(m.Sent, sentEmail{to, subject, body})
	m.mu.Unlock()
	if to == m.FailTo {
		return channel.Result{Status: channel.StatusFailure, Error: "gateway rejected"}
	}
	return channel.Result{Status: channel.StatusSuccess}
}

type sentSms struct {
	Phone string
	Body  string
}

type MockSmsSender struct {
	mu      sync.Mutex
	Sent    []sentSms
	FailAll bool
}

func (m *MockSmsSender) Send(phone, body string, meta channel.Meta) channel.Result {
	m.mu.Lock()
	m.Sent = append(m.Sent, sentSms{phone, body})
	m.mu.Unlock()
	if m.FailAll {
		return channel.Result{Status: channel.StatusFailure, Error: "gateway rejected"}
	}
	return channel.Result{Status: channel.StatusSuccess}
}

type sentWebhook struct {
	URL     string
	Payload any
}

type MockWebhookSender struct {
	mu      sync.Mutex
	Sent    []sentWebhook
	FailAll bool
}

func (m *MockWebhookSender) Send(url string, payload any) channel.Result {
	m.mu.Lock()
	m.Sent = append(m.Sent, sentWebhook{url, payload})
	m.mu.Unlock()
	if m.FailAll {
		return channel.Result{Status: channel.StatusFailure, Error: "endpoint unreachable"}
	}
	return channel.Result{Status: channel.StatusSuccess}
}

type enqueuedTask struct {
	Workflow *model.Workflow
	Event    *model.Event
	FireAt   time.Time
}

type MockScheduleRepo struct {
	mu        sync.Mutex
	Enqueued  []enqueuedTask
	DueTasks  []*model.ScheduledTask
	Unclaimed map[int]bool // task ids already claimed elsewhere
	Removed   []string
}

func (m *MockScheduleRepo) Enqueue(wf *model.Workflow, event *model.Event, fireAt time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued = append(m.Enqueued, enqueuedTask{wf, event, fireAt})
	return len(m.Enqueued), nil
}

func (m *MockScheduleRepo) Due(now time.Time) ([]*model.ScheduledTask, error) {
	return m.DueTasks, nil
}

func (m *MockScheduleRepo) Claim(taskID int) (bool, error) {
	return !m.Unclaimed[taskID], nil
}

func (m *MockScheduleRepo) ListByCompany(companyID string) ([]*model.ScheduledTask, error) {
	return m.DueTasks, nil
}

func (m *MockScheduleRepo) DeleteByEvent(eventID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, eventID)
	return 1, nil
}

type MockRecurringRepo struct {
	mu       sync.Mutex
	Existing []*model.RecurringSeriesRecord
	Stored   []*model.RecurringSeriesRecord
	Conflict bool // next Store loses the insert race
}

func (m *MockRecurringRepo) Store(rec *model.RecurringSeriesRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Conflict {
		return false, nil
	}
	// unique (series, customer, event_created_at) key
	for _, existing := range m.Existing {
		if existing.SeriesID == rec.SeriesID && existing.CustomerID == rec.CustomerID && existing.EventCreatedAt.Equal(rec.EventCreatedAt) {
			return false, nil
		}
	}
	m.Stored = append(m.Stored, rec)
	m.Existing = append(m.Existing, rec)
	return true, nil
}

func (m *MockRecurringRepo) PreviousOccurrence(seriesID, customerID string, before time.Time) (*model.RecurringSeriesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.RecurringSeriesRecord
	for _, rec := range m.Existing {
		if rec.SeriesID != seriesID || rec.CustomerID != customerID || !rec.EventCreatedAt.Before(before) {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	return latest, nil
}

func (m *MockRecurringRepo) FirstOccurrence(seriesID, customerID string) (*model.RecurringSeriesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var first *model.RecurringSeriesRecord
	for _, rec := range m.Existing {
		if rec.SeriesID != seriesID || rec.CustomerID != customerID {
			continue
		}
		if first == nil || rec.CreatedAt.Before(first.CreatedAt) {
			first = rec
		}
	}
	return first, nil
}

type MockWorkflowRepo struct {
	Workflows []*model.Workflow
}

func (m *MockWorkflowRepo) ListByCompanyAndTriggers(companyID string, triggers []string) ([]*model.Workflow, error) {
	out := []*model.Workflow{}
	for _, wf := range m.Workflows {
		if wf.CompanyID != companyID {
			continue
		}
		for _, tr := range triggers {
			if wf.Trigger == tr {
				out = append(out, wf)
				break
			}
		}
	}
	return out, nil
}

func (m *MockWorkflowRepo) GetByID(id int, companyID string) (*model.Workflow, error) {
	for _, wf := range m.Workflows {
		if wf.ID == id && wf.CompanyID == companyID {
			return wf, nil
		}
	}
	return nil, nil
}

func (m *MockWorkflowRepo) Create(wf *model.Workflow) error { return nil }

func (m *MockWorkflowRepo) UpdateSettings(id int, companyID string, settings string) error {
	return nil
}

func (m *MockWorkflowRepo) Delete(id int, companyID string) error { return nil }
