package service

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/entroapps/bookingflow-backend/internal/channel"
	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// SweepResult is what one sweep invocation reports back to its caller.
type SweepResult struct {
	RunID            string    `json:"run_id"`
	RanAt            time.Time `json:"ran_at"`
	TasksProcessed   int       `json:"tasks_processed"`
	TasksSkipped     int       `json:"tasks_skipped"`
	TasksFailed      int       `json:"tasks_failed"`
	RedriveCompleted int       `json:"redrive_completed"`
	RedriveFailed    int       `json:"redrive_failed"`
}

// Sweeper is the sweep entrypoint contract used by the HTTP handler.
type Sweeper interface {
	Run(now time.Time) (*SweepResult, error)
}

// SweepService claims every due scheduled task and executes it exactly once
// per attempt, sequentially and in claim order, then runs one redrive pass
// over the failed-delivery queue. Errors from one item never abort the
// batch.
type SweepService struct {
	Schedule repository.ScheduleRepositoryInterface
	Failed   repository.FailedDeliveryRepositoryInterface
	Runner   ActionExecutor
	Email    channel.EmailSender
	Sms      channel.SmsSender
	Webhook  channel.WebhookSender
}

func (s *SweepService) Run(now time.Time) (*SweepResult, error) {
	result := &SweepResult{RunID: uuid.NewString(), RanAt: now}

	due, err := s.Schedule.Due(now)
	if err != nil {
		return nil, err
	}
	log.Printf("sweep %s: %d due tasks", result.RunID, len(due))

	for _, task := range due {
		claimed, err := s.Schedule.Claim(task.ID)
		if err != nil {
			log.Printf("error claiming task %d: %v", task.ID, err)
			continue
		}
		if !claimed {
			// Another sweep deleted the row first; it owns the task.
			result.TasksSkipped++
			continue
		}

		event := task.Event
		if code := ExtractCustomerCode(event.Title); code != "" {
			event.CustomerCode = code
		}

		outcome := s.Runner.Run(&task.Workflow, &event)
		result.TasksProcessed++
		if outcome.Status != OutcomeSuccess {
			log.Printf("task %d finished with status %s: %s", task.ID, outcome.Status, outcome.Message)
			result.TasksFailed++
		}
	}

	s.redrive(result)
	return result, nil
}

// redrive retries every pending failed delivery once. Success deletes the
// entry; failure leaves it pending for the next cycle.
func (s *SweepService) redrive(result *SweepResult) {
	pending, err := s.Failed.ListPending()
	if err != nil {
		log.Println("error loading pending failed deliveries:", err)
		return
	}
	if len(pending) == 0 {
		return
	}
	log.Printf("redriving %d failed deliveries", len(pending))

	for _, fd := range pending {
		res := s.retry(fd)
		if res.Status == channel.StatusSuccess {
			if err := s.Failed.Delete(fd.ID); err != nil {
				log.Printf("error deleting redriven entry %d: %v", fd.ID, err)
				continue
			}
			result.RedriveCompleted++
			continue
		}
		log.Printf("redrive of entry %d failed: %s", fd.ID, res.Error)
		result.RedriveFailed++
	}
}

func (s *SweepService) retry(fd *model.FailedDelivery) channel.Result {
	switch fd.Channel {
	case model.ActionEmail:
		var content struct {
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := json.Unmarshal(fd.Payload, &content); err != nil {
			return channel.Result{Status: channel.StatusFailure, Error: "bad payload: " + err.Error()}
		}
		return s.Email.Send(fd.Destination, content.Subject, content.Body, channel.Meta{})
	case model.ActionSms:
		var content struct {
			Body string `json:"body"`
		}
		if err := json.Unmarshal(fd.Payload, &content); err != nil {
			return channel.Result{Status: channel.StatusFailure, Error: "bad payload: " + err.Error()}
		}
		return s.Sms.Send(fd.Destination, content.Body, channel.Meta{})
	case model.ActionWebhook:
		return s.Webhook.Send(fd.Destination, json.RawMessage(fd.Payload))
	default:
		return channel.Result{Status: channel.StatusFailure, Error: "unknown channel: " + fd.Channel}
	}
}

var _ Sweeper = (*SweepService)(nil)
