package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/queue"
	"github.com/entroapps/bookingflow-backend/internal/repository"
	"github.com/entroapps/bookingflow-backend/internal/service"
	"github.com/entroapps/bookingflow-backend/internal/signature"
)

// WebhookHandler receives booking-platform webhooks. Every endpoint verifies
// the shared-secret signature over the company id before touching any state.
type WebhookHandler struct {
	Engine   *service.WorkflowEngine
	Schedule repository.ScheduleRepositoryInterface
	Verifier signature.Verifier

	// Queue is optional: when set, created and updated events are published
	// to the broker and processed by the worker instead of inline.
	Queue queue.Publisher
}

func NewWebhookHandler(engine *service.WorkflowEngine, schedule repository.ScheduleRepositoryInterface, verifier signature.Verifier) *WebhookHandler {
	return &WebhookHandler{
		Engine:   engine,
		Schedule: schedule,
		Verifier: verifier,
	}
}

// eventEnvelope is the wire shape the booking platform delivers: the event
// sits under "data" with its service type nested in event_types.
type eventEnvelope struct {
	Data struct {
		ID             string    `json:"id"`
		Company        string    `json:"company"`
		Customer       string    `json:"customer"`
		CustomerName   string    `json:"customer_name"`
		StartsAt       time.Time `json:"starts_at"`
		EndsAt         time.Time `json:"ends_at"`
		CreatedAt      time.Time `json:"created_at"`
		RecurringEvent string    `json:"recurring_event"`
		RRule          string    `json:"rrule"`
		EventTypes     []struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"event_types"`
	} `json:"data"`
}

// event flattens the envelope into the internal snapshot. The first entry of
// event_types is the booked service; an envelope without one is rejected.
func (env *eventEnvelope) event() (*model.Event, bool) {
	if len(env.Data.EventTypes) == 0 {
		return nil, false
	}
	serviceType := env.Data.EventTypes[0]
	return &model.Event{
		ID:               env.Data.ID,
		CompanyID:        env.Data.Company,
		CustomerID:       env.Data.Customer,
		CustomerName:     env.Data.CustomerName,
		ServiceTypeID:    serviceType.ID,
		Title:            serviceType.Title,
		Description:      serviceType.Description,
		StartsAt:         env.Data.StartsAt,
		EndsAt:           env.Data.EndsAt,
		CreatedAt:        env.Data.CreatedAt,
		RecurringEventID: env.Data.RecurringEvent,
		RRule:            env.Data.RRule,
	}, true
}

func (h *WebhookHandler) decode(w http.ResponseWriter, r *http.Request) (*model.Event, bool) {
	var env eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	event, ok := env.event()
	if !ok {
		http.Error(w, "event has no event_types", http.StatusBadRequest)
		return nil, false
	}
	if !h.Verifier.Verify(event.CompanyID, r.Header.Get(signature.Header)) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return event, true
}

// EventCreatedHandler handles a new booking: hand it to the worker via the
// broker when one is wired, otherwise process it inline.
func (h *WebhookHandler) EventCreatedHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := h.decode(w, r)
	if !ok {
		return
	}

	if h.Queue != nil {
		payload, err := json.Marshal(event)
		if err == nil {
			err = h.Queue.Publish(queue.EventsQueue, payload)
		}
		if err != nil {
			http.Error(w, "failed to enqueue event: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"message": "Webhook received and event enqueued"})
		return
	}

	if err := h.Engine.ProcessEvent(event); err != nil {
		http.Error(w, "failed to process event: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Webhook received and event processed"})
}

// EventUpdatedHandler drops every task scheduled for the old version of the
// event, then re-processes the new snapshot from scratch.
func (h *WebhookHandler) EventUpdatedHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := h.decode(w, r)
	if !ok {
		return
	}

	removed, err := h.Schedule.DeleteByEvent(event.ID)
	if err != nil {
		http.Error(w, "failed to clear scheduled tasks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("event %s updated, removed %d scheduled tasks", event.ID, removed)

	if err := h.Engine.ProcessEvent(event); err != nil {
		http.Error(w, "failed to process event: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Webhook received and event reprocessed"})
}

// EventDeletedHandler clears pending tasks for a cancelled booking. Deleting
// one occurrence of a recurring series leaves the series' tasks alone.
func (h *WebhookHandler) EventDeletedHandler(w http.ResponseWriter, r *http.Request) {
	event, ok := h.decode(w, r)
	if !ok {
		return
	}

	if event.IsRecurring() {
		writeJSON(w, map[string]string{"message": "Recurring occurrence ignored"})
		return
	}

	removed, err := h.Schedule.DeleteByEvent(event.ID)
	if err != nil {
		http.Error(w, "failed to clear scheduled tasks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("event %s deleted, removed %d scheduled tasks", event.ID, removed)
	writeJSON(w, map[string]any{"message": "Scheduled tasks removed", "removed": removed})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
