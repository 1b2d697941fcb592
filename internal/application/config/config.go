package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel    string
	DebugMode   bool
	MetricsHost string

	Crawl struct {
		HomepageTimeout time.Duration
		SubpageTimeout  time.Duration
		MaxSubpages     int
		DefaultLanguage string
	}

	AnalysisStoreSize int
}

func NewAppConfig() (*AppConfig, error) {
	err := godotenv.Load(`config.env`)
	if err != nil {
		return nil, err
	}

	cfg := AppConfig{}
	cfg.LogLevel = os.Getenv("APP_LOG_LEVEL")
	cfg.DebugMode = os.Getenv("APP_ENABLE_DEBUG") == "true"
	cfg.MetricsHost = os.Getenv("HTTP_APP_METRICS_HOST")

	var errMsg []string

	if dur, err := time.ParseDuration(os.Getenv("CRAWL_HOMEPAGE_TIMEOUT_DURATION")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`CRAWL_HOMEPAGE_TIMEOUT_DURATION: %v`, err))
	} else {
		cfg.Crawl.HomepageTimeout = dur
	}

	if dur, err := time.ParseDuration(os.Getenv("CRAWL_SUBPAGE_TIMEOUT_DURATION")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`CRAWL_SUBPAGE_TIMEOUT_DURATION: %v`, err))
	} else {
		cfg.Crawl.SubpageTimeout = dur
	}

	if n, err := strconv.Atoi(os.Getenv("CRAWL_MAX_SUBPAGES")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`CRAWL_MAX_SUBPAGES: %v`, err))
	} else {
		cfg.Crawl.MaxSubpages = n
	}

	cfg.Crawl.DefaultLanguage = os.Getenv("CRAWL_DEFAULT_LANGUAGE")

	if n, err := strconv.Atoi(os.Getenv("ANALYSIS_STORE_SIZE")); err != nil {
		errMsg = append(errMsg, fmt.Sprintf(`ANALYSIS_STORE_SIZE: %v`, err))
	} else {
		cfg.AnalysisStoreSize = n
	}

	errMsg = append(errMsg, validate(&cfg)...)
	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) []string {
	var errMsg []string
	if cfg.LogLevel == "" {
		errMsg = append(errMsg, `log level is empty`)
	}

	if cfg.MetricsHost == "" {
		errMsg = append(errMsg, `metrics host is empty`)
	}

	if cfg.Crawl.DefaultLanguage == "" {
		errMsg = append(errMsg, `default language is empty`)
	}

	if cfg.Crawl.MaxSubpages < 0 {
		errMsg = append(errMsg, `max subpages is negative`)
	}

	if cfg.AnalysisStoreSize <= 0 {
		errMsg = append(errMsg, `analysis store size must be positive`)
	}

	return errMsg
}
