//cmd/seeder/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/entroapps/bookingflow-backend/internal/config"
	"github.com/entroapps/bookingflow-backend/internal/db"
	"github.com/entroapps/bookingflow-backend/internal/model"
	"github.com/entroapps/bookingflow-backend/internal/repository"
)

// Seeds a demo company with one workflow per trigger kind. Company and
// service type come from SEED_COMPANY_ID / SEED_SERVICE_TYPE_ID.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}
	cfg := config.Load()

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	companyID := os.Getenv("SEED_COMPANY_ID")
	serviceTypeID := os.Getenv("SEED_SERVICE_TYPE_ID")
	if companyID == "" || serviceTypeID == "" {
		log.Fatal("SEED_COMPANY_ID and SEED_SERVICE_TYPE_ID must be set")
	}

	repo := &repository.WorkflowRepository{DB: database}

	workflows := []*model.Workflow{
		{
			CompanyID: companyID,
			Trigger:   model.TriggerAppointmentBooked,
			Action:    model.ActionSms,
			Name:      "Booking confirmation SMS",
			Settings: settings(model.WorkflowSettings{
				ServiceTypes: []string{serviceTypeID},
				SmsTemplate: &model.SmsTemplate{
					Body:       "Hi {customerName}, your booking for {eventTitle} is confirmed. Access code: {customerCode}.",
					Recipients: "{customerPhone}",
				},
			}),
		},
		{
			CompanyID: companyID,
			Trigger:   model.TriggerTimeBefore,
			Action:    model.ActionEmail,
			Name:      "Reminder email one day ahead",
			Settings: settings(model.WorkflowSettings{
				Interval:     model.Interval{Days: 1},
				ServiceTypes: []string{serviceTypeID},
				EmailTemplate: &model.EmailTemplate{
					Subject:    "Reminder: {eventTitle} tomorrow",
					Body:       "<p>Hi {customerName},</p><p>{eventDescription}</p><p>Your access code is {customerCode}.</p>",
					Recipients: "{customerEmail}",
				},
			}),
		},
		{
			CompanyID: companyID,
			Trigger:   model.TriggerTimeAfter,
			Action:    model.ActionEmail,
			Name:      "Follow-up email two hours after",
			Settings: settings(model.WorkflowSettings{
				Interval:     model.Interval{Hours: 2},
				ServiceTypes: []string{serviceTypeID},
				EmailTemplate: &model.EmailTemplate{
					Subject:    "How was {eventTitle}?",
					Body:       "<p>Hi {customerName}, thanks for visiting. We would love your feedback.</p>",
					Recipients: "{customerEmail}",
				},
			}),
		},
		{
			CompanyID: companyID,
			Trigger:   model.TriggerAppointmentBooked,
			Action:    model.ActionWebhook,
			Name:      "Access system sync",
			Settings: settings(model.WorkflowSettings{
				ServiceTypes: []string{serviceTypeID},
			}),
		},
	}

	for _, wf := range workflows {
		if err := repo.Create(wf); err != nil {
			log.Fatalf("failed to seed workflow %q: %v", wf.Name, err)
		}
		fmt.Printf("Seeded workflow %d: %s\n", wf.ID, wf.Name)
	}

	fmt.Println("Database seeding completed successfully!")
}

func settings(s model.WorkflowSettings) string {
	raw, err := json.Marshal(s)
	if err != nil {
		log.Fatal(err)
	}
	return string(raw)
}
