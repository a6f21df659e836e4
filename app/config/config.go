package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB       *sql.DB
	Port     string
	Renderer RendererConfig
	Grading  GradingConfig
	Library  LibraryConfig
}

// RendererConfig points at the external report rendering function.
type RendererConfig struct {
	BaseURL      string
	FunctionName string
}

type GradingConfig struct {
	// ReadyThreshold is the number of approved subject submissions a
	// student needs before a report card can be generated.
	ReadyThreshold int
}

type LibraryConfig struct {
	// FineRatePerDay is charged for every day a loan is overdue.
	FineRatePerDay float64
	LoanPeriodDays int
}

var AppConfig *Config

// Init loads .env, connects the database pool and builds the app config.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOrInt("DB_PORT", 5432)
		user := envOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := envOr("DB_NAME", "school20")
		sslmode := envOr("DB_SSLMODE", "disable")

		psqlInfo = fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=30",
			host, port, user, dbname, sslmode)
		if password != "" {
			psqlInfo += " password=" + password
		}
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:   db,
		Port: envOr("PORT", "8080"),
		Renderer: RendererConfig{
			BaseURL:      envOr("REPORT_RENDERER_URL", "http://localhost:9000/functions"),
			FunctionName: envOr("REPORT_RENDERER_FUNCTION", "generate-report-card"),
		},
		Grading: GradingConfig{
			ReadyThreshold: envOrInt("REPORT_READY_THRESHOLD", 3),
		},
		Library: LibraryConfig{
			FineRatePerDay: envOrFloat("FINE_RATE_PER_DAY", 500),
			LoanPeriodDays: envOrInt("LOAN_PERIOD_DAYS", 14),
		},
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, fallback)
	}
	return fallback
}

func envOrFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid value for %s, using default %v", key, fallback)
	}
	return fallback
}
