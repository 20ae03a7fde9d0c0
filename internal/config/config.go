package config

import "os"

// Config holds everything the binaries read from the environment.
// Load .env with godotenv in main before calling Load.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	AMQPURL string

	// Shared-secret signature over webhook and sweep calls.
	Salt   string
	Secret string
	// Fixed token the sweep caller signs.
	RunToken string

	EmailAPIURL   string
	SmsAPIURL     string
	WebhookURL    string
	BookingAPIURL string
	BookingToken  string
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "8080"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),

		AMQPURL: os.Getenv("AMQP_URL"),

		Salt:     os.Getenv("SALT"),
		Secret:   os.Getenv("SECRET"),
		RunToken: getenv("RUN_TOKEN", "bookingflow-cron"),

		EmailAPIURL:   os.Getenv("EMAIL_API_URL"),
		SmsAPIURL:     os.Getenv("SMS_API_URL"),
		WebhookURL:    os.Getenv("BOOKING_WEBHOOK_URL"),
		BookingAPIURL: os.Getenv("BOOKING_API_URL"),
		BookingToken:  os.Getenv("BOOKING_API_TOKEN"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
