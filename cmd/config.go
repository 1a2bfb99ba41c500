package cmd

import "time"

// Config carries everything the application needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	EmailEndpoint string
	EmailAPIKey   string
	EmailFrom     string
	EmailMockMode bool

	SMSEndpoint string
	SMSAPIKey   string
	SMSSender   string
	SMSMockMode bool

	PushEndpoint string
	PushAPIKey   string
	PushMockMode bool

	OfferExpiryWindow   time.Duration
	VisitReminderWindow time.Duration
}
