// cmd/worker/main.go
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/entroapps/bookingflow-backend/internal/booking"
	"github.com/entroapps/bookingflow-backend/internal/channel"
	"github.com/entroapps/bookingflow-backend/internal/config"
	"github.com/entroapps/bookingflow-backend/internal/db"
	"github.com/entroapps/bookingflow-backend/internal/queue"
	"github.com/entroapps/bookingflow-backend/internal/repository"
	"github.com/entroapps/bookingflow-backend/internal/service"
)

// The worker drains the booking-events queue the webhook server publishes to
// and runs the full event-processing path for each message.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}
	defer database.Close()

	workflowRepo := &repository.WorkflowRepository{DB: database}
	scheduleRepo := &repository.ScheduleRepository{DB: database}
	auditRepo := &repository.AuditRepository{DB: database}
	failedRepo := &repository.FailedDeliveryRepository{DB: database}
	recurringRepo := &repository.RecurringRepository{DB: database}

	runner := &service.ActionRunner{
		Audit:      auditRepo,
		Failed:     failedRepo,
		Email:      channel.NewHTTPEmailSender(cfg.EmailAPIURL),
		Sms:        channel.NewHTTPSmsSender(cfg.SmsAPIURL),
		Webhook:    channel.NewHTTPWebhookSender(),
		WebhookURL: cfg.WebhookURL,
	}

	engine := &service.WorkflowEngine{
		Workflows: workflowRepo,
		Schedule:  scheduleRepo,
		Recurring: &service.RecurringService{
			Recurring: recurringRepo,
			Workflows: workflowRepo,
			Runner:    runner,
		},
		Runner: runner,
	}
	if cfg.BookingAPIURL != "" {
		engine.Booking = booking.NewClient(cfg.BookingAPIURL, cfg.BookingToken)
	}

	broker, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Fatal("failed to connect to broker:", err)
	}
	defer broker.Close()

	log.Println("worker waiting for booking events")
	if err := broker.Consume(queue.EventsQueue, engine.ProcessEventPayload); err != nil {
		log.Fatal("consumer stopped:", err)
	}
}
