package http

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// HTTPServerConfig holds the listener timeouts for the crawl API server.
// The write timeout must stay above the worst-case crawl deadline
// (homepage timeout plus the capped subpage fallback), otherwise the
// server cuts off synchronous /crawl responses mid-flight.
type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

func NewHTTPServerConfig() (*HTTPServerConfig, error) {
	if err := godotenv.Load(`config.env`); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var problems []string
	cfg := &HTTPServerConfig{}

	cfg.Host = os.Getenv("HTTP_SERVER_HOST")
	if cfg.Host == "" {
		problems = append(problems, "HTTP_SERVER_HOST is required")
	}

	durations := []struct {
		envVar string
		dst    *time.Duration
	}{
		{"HTTP_APP_READ_TIMEOUT_DURATION", &cfg.Timeouts.Read},
		{"HTTP_APP_READ_HEADER_TIMEOUT_DURATION", &cfg.Timeouts.ReadHeader},
		{"HTTP_APP_WRITE_TIMEOUT_DURATION", &cfg.Timeouts.Write},
		{"HTTP_APP_IDLE_TIMEOUT_DURATION", &cfg.Timeouts.Idle},
		{"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", &cfg.Timeouts.ShutdownWait},
	}
	for _, d := range durations {
		value := os.Getenv(d.envVar)
		if value == "" {
			problems = append(problems, fmt.Sprintf("%s is required", d.envVar))
			continue
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid duration format: %v", d.envVar, err))
			continue
		}
		*d.dst = duration
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}

	return cfg, nil
}
