package service

import (
	"strconv"
	"time"

	"github.com/entroapps/bookingflow-backend/internal/model"
)

// BookingPayload is the fixed shape posted to outbound webhook consumers.
// Booking times travel as epoch seconds, dates as YYYY/MM/DD.
type BookingPayload struct {
	EventID                   string  `json:"eventId"`
	BookingStartsAtTime       string  `json:"bookingStartsAtTime"`
	BookingEndsAtTime         string  `json:"bookingEndsAtTime"`
	BookingStartDate          string  `json:"bookingStartDate"`
	BookingEndDate            string  `json:"bookingEndDate"`
	BookingCode               string  `json:"bookingCode"`
	BookingCustomerName       string  `json:"bookingCustomerName"`
	BookingCustomerPhone      string  `json:"bookingCustomerPhone"`
	BookingCompanyEmail       string  `json:"bookingCompanyEmail"`
	Status                    string  `json:"status"`
	Timestamp                 string  `json:"timestamp"`
	ConfirmationText          string  `json:"eConformationText"`
	BookingCustomerPhoneLocal *string `json:"bookingCustomerPhoneLocal"`
	IsRecurring               string  `json:"isRecurring"`
	ServiceName               string  `json:"serviceName"`
	RRule                     string  `json:"rrule"`
	RepeatsAppointment        string  `json:"RepeatsAppointment"`
	BookingDescription        string  `json:"bookingdescription"`
}

// WebhookPayload builds the outbound payload from an event snapshot and its
// placeholder values, with the customer-field defaults delivery consumers
// expect when a booking arrives without contact details.
func WebhookPayload(event *model.Event, values map[string]string) BookingPayload {
	customerName := event.CustomerName
	if customerName == "" {
		customerName = "test"
	}
	customerPhone := event.CustomerPhone
	if customerPhone == "" {
		customerPhone = "7771991"
	}
	customerEmail := event.CustomerEmail
	if customerEmail == "" {
		customerEmail = "test@gmail.com"
	}

	isRecurring := "false"
	rrule := "Never"
	if event.RRule != "" {
		isRecurring = "true"
		rrule = ExtractFreq(event.RRule)
	}

	return BookingPayload{
		EventID:              event.ID,
		BookingStartsAtTime:  strconv.FormatInt(event.StartsAt.Unix(), 10),
		BookingEndsAtTime:    strconv.FormatInt(event.EndsAt.Unix(), 10),
		BookingStartDate:     event.StartsAt.UTC().Format("2006/01/02"),
		BookingEndDate:       event.EndsAt.UTC().Format("2006/01/02"),
		BookingCode:          values["customerCode"],
		BookingCustomerName:  customerName,
		BookingCustomerPhone: customerPhone,
		BookingCompanyEmail:  customerEmail,
		Status:               "notdone",
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		ConfirmationText:     "false",
		IsRecurring:          isRecurring,
		ServiceName:          values["eventTitle"],
		RRule:                rrule,
		RepeatsAppointment:   isRecurring,
		BookingDescription:   values["eventDescription"],
	}
}
