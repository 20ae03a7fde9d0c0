package service_test

import (
	"regexp"
	"testing"

	"github.com/entroapps/bookingflow-backend/internal/service"
)

func TestGenerateCustomerCode(t *testing.T) {
	sixDigits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code := service.GenerateCustomerCode()
		if !sixDigits.MatchString(code) {
			t.Fatalf("GenerateCustomerCode = %q, want 6 digits", code)
		}
	}
}

func TestExtractCustomerCode(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"(482913) Deep Tissue Massage", "482913"},
		{"Deep Tissue Massage", ""},
		{"(12345) too short", ""},
		{"prefix (001234) suffix", "001234"},
	}
	for _, tc := range cases {
		if got := service.ExtractCustomerCode(tc.title); got != tc.want {
			t.Errorf("ExtractCustomerCode(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestGenerateEventTitleRoundTrips(t *testing.T) {
	title := service.GenerateEventTitle("The Golf Session", "482913")
	if title != "(482913) The Golf Session" {
		t.Errorf("GenerateEventTitle = %q", title)
	}
	if got := service.ExtractCustomerCode(title); got != "482913" {
		t.Errorf("ExtractCustomerCode(generated title) = %q, want 482913", got)
	}
}

func TestGenerateEventDescription(t *testing.T) {
	got := service.GenerateEventDescription("482913")
	if got != "Welcome! Your access code is: 482913" {
		t.Errorf("GenerateEventDescription = %q", got)
	}
}

func TestExtractFreq(t *testing.T) {
	cases := []struct {
		rrule string
		want  string
	}{
		{"FREQ=WEEKLY;BYDAY=MO", "WEEKLY"},
		{"FREQ=DAILY", "DAILY"},
		{"BYDAY=MO", "None"},
		{"", "None"},
	}
	for _, tc := range cases {
		if got := service.ExtractFreq(tc.rrule); got != tc.want {
			t.Errorf("ExtractFreq(%q) = %q, want %q", tc.rrule, got, tc.want)
		}
	}
}

func TestTransliterate(t *testing.T) {
	got := service.Transliterate("Þórður æfir í Örfirisey")
	want := "Thordur aefir i Orfirisey"
	if got != want {
		t.Errorf("Transliterate = %q, want %q", got, want)
	}
}
