package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port       string
	DBDSN      string
	AMQPURL    string // empty disables the broker and falls back to in-memory events
	EventQueue string

	// Reject comments shorter than RejectCommentMinLen runes are refused.
	RejectCommentMinLen int
	MaxPageSize         int
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env %s must be an integer, got %q", k, v)
	}
	return n
}

// MustLoad reads the environment. DB_DSN wins when set; otherwise the DSN is
// assembled from the individual DB_* variables.
func MustLoad() Config {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			getenv("DB_NAME", "marketing"),
		)
	}

	return Config{
		Port:                getenv("PORT", "8080"),
		DBDSN:               dsn,
		AMQPURL:             os.Getenv("AMQP_URL"),
		EventQueue:          getenv("EVENT_QUEUE", "campaign_events"),
		RejectCommentMinLen: getenvInt("REJECT_COMMENT_MIN_LEN", 10),
		MaxPageSize:         getenvInt("MAX_PAGE_SIZE", 50),
	}
}
