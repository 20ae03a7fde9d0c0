// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/entroapps/bookingflow-backend/internal/booking"
	"github.com/entroapps/bookingflow-backend/internal/channel"
	"github.com/entroapps/bookingflow-backend/internal/config"
	"github.com/entroapps/bookingflow-backend/internal/db"
	"github.com/entroapps/bookingflow-backend/internal/handler"
	"github.com/entroapps/bookingflow-backend/internal/queue"
	"github.com/entroapps/bookingflow-backend/internal/repository"
	"github.com/entroapps/bookingflow-backend/internal/service"
	"github.com/entroapps/bookingflow-backend/internal/signature"
)

func main() {
	// Load .env
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

	emailSender := channel.NewHTTPEmailSender(cfg.EmailAPIURL)
	smsSender := channel.NewHTTPSmsSender(cfg.SmsAPIURL)
	webhookSender := channel.NewHTTPWebhookSender()

	runner := &service.ActionRunner{
		Audit:      auditRepo,
		Failed:     failedRepo,
		Email:      emailSender,
		Sms:        smsSender,
		Webhook:    webhookSender,
		WebhookURL: cfg.WebhookURL,
	}

	recurring := &service.RecurringService{
		Recurring: recurringRepo,
		Workflows: workflowRepo,
		Runner:    runner,
	}

	engine := &service.WorkflowEngine{
		Workflows: workflowRepo,
		Schedule:  scheduleRepo,
		Recurring: recurring,
		Runner:    runner,
	}
	if cfg.BookingAPIURL != "" {
		engine.Booking = booking.NewClient(cfg.BookingAPIURL, cfg.BookingToken)
	}

	sweeps := &service.SweepService{
		Schedule: scheduleRepo,
		Failed:   failedRepo,
		Runner:   runner,
		Email:    emailSender,
		Sms:      smsSender,
		Webhook:  webhookSender,
	}

	verifier := signature.Verifier{Salt: cfg.Salt, Secret: cfg.Secret}

	webhookHandler := handler.NewWebhookHandler(engine, scheduleRepo, verifier)
	if cfg.AMQPURL != "" {
		broker, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatal("failed to connect to broker:", err)
		}
		defer broker.Close()
		webhookHandler.Queue = broker
	}

	runHandler := handler.NewRunHandler(sweeps, verifier, cfg.RunToken)
	auditHandler := handler.NewAuditHandler(scheduleRepo, auditRepo)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", signature.Header},
	}))

	// Booking platform webhooks
	r.Post("/webhooks/event-created", webhookHandler.EventCreatedHandler)
	r.Post("/webhooks/event-updated", webhookHandler.EventUpdatedHandler)
	r.Post("/webhooks/event-deleted", webhookHandler.EventDeletedHandler)

	// Sweep entrypoint for the external cron
	r.Post("/run", runHandler.RunHandler)

	// Audit reads
	r.Get("/companies/{companyID}/scheduled", auditHandler.ListScheduledHandler)
	r.Get("/companies/{companyID}/sent", auditHandler.ListSentHandler)
	r.Get("/companies/{companyID}/logs", auditHandler.ListLogsHandler)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
