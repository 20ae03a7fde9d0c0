package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/service"
)

type MockExecutor struct {
	Ran     []*model.Event
	Outcome service.ActionOutcome
}

func (m *MockExecutor) Run(wf *model.Workflow, event *model.Event) service.ActionOutcome {
	m.Ran = append(m.Ran, event)
	if m.Outcome.Status == "" {
		return service.ActionOutcome{Status: service.OutcomeSuccess}
	}
	return m.Outcome
}

func dueTask(id int, title string) *model.ScheduledTask {
	return &model.ScheduledTask{
		ID:       id,
		Workflow: model.Workflow{ID: 1, Action: model.ActionSms},
		Event: model.Event{
			ID:        "evt-1",
			CompanyID: "co-1",
			Title:     title,
		},
		FireAt: time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
	}
}

func TestSweepRunsEveryClaimedTask(t *testing.T) {
	schedule := &MockScheduleRepo{
		DueTasks: []*model.ScheduledTask{dueTask(1, "(482913) Golf Lesson"), dueTask(2, "(771122) Golf Lesson")},
	}
	executor := &MockExecutor{}
	sweeps := &service.SweepService{Schedule: schedule, Failed: &MockFailedRepo{}, Runner: executor}

	result, err := sweeps.Run(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.TasksProcessed != 2 || result.TasksSkipped != 0 {
		t.Errorf("result = %+v, want 2 processed", result)
	}
	if result.RunID == "" {
		t.Error("sweep result carries no run id")
	}
	if len(executor.Ran) != 2 {
		t.Fatalf("executor ran %d tasks, want 2", len(executor.Ran))
	}
	// the code stored in the snapshot title drives the execution
	if executor.Ran[0].CustomerCode != "482913" || executor.Ran[1].CustomerCode != "771122" {
		t.Errorf("customer codes = %q, %q", executor.Ran[0].CustomerCode, executor.Ran[1].CustomerCode)
	}
}

func TestSweepSkipsTasksClaimedElsewhere(t *testing.T) {
	schedule := &MockScheduleRepo{
		DueTasks:  []*model.ScheduledTask{dueTask(1, "(482913) a"), dueTask(2, "(482913) b")},
		Unclaimed: map[int]bool{2: true},
	}
	executor := &MockExecutor{}
	sweeps := &service.SweepService{Schedule: schedule, Failed: &MockFailedRepo{}, Runner: executor}

	result, err := sweeps.Run(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.TasksProcessed != 1 || result.TasksSkipped != 1 {
		t.Errorf("result = %+v, want 1 processed and 1 skipped", result)
	}
	if len(executor.Ran) != 1 {
		t.Errorf("executor ran %d tasks, want 1", len(executor.Ran))
	}
}

func TestSweepKeepsSnapshotCodeWhenTitleHasNone(t *testing.T) {
	task := dueTask(1, "Golf Lesson")
	task.Event.CustomerCode = "654321"
	schedule := &MockScheduleRepo{DueTasks: []*model.ScheduledTask{task}}
	executor := &MockExecutor{}
	sweeps := &service.SweepService{Schedule: schedule, Failed: &MockFailedRepo{}, Runner: executor}

	if _, err := sweeps.Run(time.Now()); err != nil {
		t.Fatal(err)
	}
	if executor.Ran[0].CustomerCode != "654321" {
		t.Errorf("customer code = %q, want snapshot value kept", executor.Ran[0].CustomerCode)
	}
}

func TestSweepRedrivesPendingDeliveries(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"subject": "s", "body": "b"})
	failed := &MockFailedRepo{
		Pending: []*model.FailedDelivery{
			{ID: 11, Channel: model.ActionEmail, Destination: "jon@example.is", Payload: payload},
		},
	}
	email := &MockEmailSender{}
	sweeps := &service.SweepService{
		Schedule: &MockScheduleRepo{},
		Failed:   failed,
		Runner:   &MockExecutor{},
		Email:    email,
	}

	result, err := sweeps.Run(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.RedriveCompleted != 1 || result.RedriveFailed != 0 {
		t.Errorf("result = %+v, want one completed redrive", result)
	}
	if len(email.Sent) != 1 || email.Sent[0].To != "jon@example.is" || email.Sent[0].Subject != "s" {
		t.Errorf("email.Sent = %+v", email.Sent)
	}
	// a delivered entry leaves the store
	if len(failed.Deleted) != 1 || failed.Deleted[0] != 11 {
		t.Errorf("deleted = %v, want [11]", failed.Deleted)
	}
}

func TestSweepLeavesFailedRedrivesPending(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"body": "hi"})
	failed := &MockFailedRepo{
		Pending: []*model.FailedDelivery{
			{ID: 12, Channel: model.ActionSms, Destination: "+3545551234", Payload: payload},
		},
	}
	sms := &MockSmsSender{FailAll: true}
	sweeps := &service.SweepService{
		Schedule: &MockScheduleRepo{},
		Failed:   failed,
		Runner:   &MockExecutor{},
		Sms:      sms,
	}

	result, err := sweeps.Run(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.RedriveCompleted != 0 || result.RedriveFailed != 1 {
		t.Errorf("result = %+v, want one failed redrive", result)
	}
	if len(failed.Deleted) != 0 {
		t.Errorf("deleted = %v, want none", failed.Deleted)
	}
}

func TestSweepRedrivesWebhookWithRawPayload(t *testing.T) {
	payload := json.RawMessage(`{"eventId":"evt-1"}`)
	failed := &MockFailedRepo{
		Pending: []*model.FailedDelivery{
			{ID: 13, Channel: model.ActionWebhook, Destination: "https://hooks.example.is/b", Payload: payload},
		},
	}
	webhook := &MockWebhookSender{}
	sweeps := &service.SweepService{
		Schedule: &MockScheduleRepo{},
		Failed:   failed,
		Runner:   &MockExecutor{},
		Webhook:  webhook,
	}

	if _, err := sweeps.Run(time.Now()); err != nil {
		t.Fatal(err)
	}
	if len(webhook.Sent) != 1 || webhook.Sent[0].URL != "https://hooks.example.is/b" {
		t.Errorf("webhook.Sent = %+v", webhook.Sent)
	}
}
