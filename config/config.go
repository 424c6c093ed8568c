package config

import (
	"log"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Port   string `envconfig:"PORT" default:"8002"`
	AppURL string `envconfig:"APP_URL" default:"http://localhost:5173"`

	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"booking_manager"`

	// Redis (optional; rate limiting is skipped when empty)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	// Payment gateway
	CashfreeAppID   string `envconfig:"CASHFREE_APP_ID"`
	CashfreeSecret  string `envconfig:"CASHFREE_SECRET_KEY"`
	CashfreeBaseURL string `envconfig:"CASHFREE_BASE_URL" default:"https://sandbox.cashfree.com/pg"`

	// SMTP
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	// Invite-code spreadsheet
	SheetEndpoint string `envconfig:"SHEET_ENDPOINT"`
	SheetToken    string `envconfig:"SHEET_TOKEN"`

	// Admin surface
	JWTSecret         string `envconfig:"JWT_SECRET"`
	AdminUsername     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// Event metadata
	EventName   string `envconfig:"EVENT_NAME" default:"Slanup Diwali Night"`
	EventPrefix string `envconfig:"EVENT_PREFIX" default:"DIW"`
}

// EventSlug is used in redirect and email links for the event landing page.
func (a App) EventSlug() string {
	return slug.Make(a.EventName)
}

func Load() (App, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
