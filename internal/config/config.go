package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   string
	TokenExpiry int // hours

	// Location is the fixed local convention all calendar-date strings are
	// derived in. Streak math compares date strings, never instants.
	Location *time.Location

	// SubHabitAutoComplete switches on the (disabled by default) behavior of
	// completing the parent habit when the last open sub-habit is checked.
	SubHabitAutoComplete bool
}

// LoadConfig reads the .env file (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	expiry, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "72"))
	if err != nil {
		expiry = 72
	}

	tz := getEnv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logrus.WithField("timezone", tz).Warn("Unknown timezone, falling back to UTC")
		loc = time.UTC
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("DB_NAME", "habibee"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenExpiry:          expiry,
		Location:             loc,
		SubHabitAutoComplete: getEnv("SUBHABIT_AUTOCOMPLETE", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
