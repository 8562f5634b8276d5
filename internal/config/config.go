package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/turno-scheduler/internal/schedule"
)

// Applicant is the fixed personal data the form is filled with.
type Applicant struct {
	Name     string `yaml:"name"`
	Surname  string `yaml:"surname"`
	Document string `yaml:"document"`
	Unit     string `yaml:"unit"`
	Minors   string `yaml:"minors"`
}

type Config struct {
	PortalURL   string
	DownloadDir string
	HistoryDB   string
	Timezone    *time.Location

	// TargetTime optionally overrides the submission instant (HH:MM[:SS]).
	TargetTime string
	// TestMode skips the precision wait and the availability poll.
	TestMode bool
	Headless bool

	Applicant Applicant

	ResendAPIKey string
	MailFrom     string
	MailTo       []string

	PollInterval  time.Duration
	PollBudget    time.Duration
	SubmitBudget  time.Duration
	SubmitWindow  time.Duration
	NavMaxRetries int
	NavTimeout    time.Duration
}

// FromEnv builds the run configuration from the environment, loading a .env
// file when present. An optional PROFILE_PATH yaml file supplies applicant
// data; individual APPLICANT_* vars override it.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		PortalURL:   getenv("TURNO_URL", "https://www.santafe.gob.ar/seturnosweb/"),
		DownloadDir: getenv("DOWNLOAD_DIR", "downloads"),
		HistoryDB:   getenv("HISTORY_DB", "turnos.db"),
		TargetTime:  os.Getenv("TARGET_TIME"),
		TestMode:    boolenv("TEST_MODE"),
		Headless:    getenv("HEADLESS", "true") != "false",

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getenv("MAIL_FROM", "turnos@resend.dev"),
		MailTo:       splitCSV(os.Getenv("MAIL_TO")),
	}

	loc, err := time.LoadLocation(getenv("TIMEZONE", schedule.DefaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	applicant, err := loadApplicant(os.Getenv("PROFILE_PATH"))
	if err != nil {
		return Config{}, err
	}
	cfg.Applicant = applicant

	if cfg.PollInterval, err = secondsEnv("POLL_INTERVAL_SECONDS", 5); err != nil {
		return Config{}, err
	}
	if cfg.PollBudget, err = secondsEnv("POLL_BUDGET_SECONDS", 300); err != nil {
		return Config{}, err
	}
	if cfg.SubmitBudget, err = secondsEnv("SUBMIT_BUDGET_SECONDS", 900); err != nil {
		return Config{}, err
	}
	if cfg.SubmitWindow, err = secondsEnv("SUBMIT_WINDOW_SECONDS", 15); err != nil {
		return Config{}, err
	}
	if cfg.NavTimeout, err = secondsEnv("NAV_TIMEOUT_SECONDS", 30); err != nil {
		return Config{}, err
	}

	retries, err := strconv.Atoi(getenv("NAV_MAX_RETRIES", "5"))
	if err != nil || retries < 1 {
		return Config{}, fmt.Errorf("invalid NAV_MAX_RETRIES")
	}
	cfg.NavMaxRetries = retries

	if cfg.ResendAPIKey != "" && len(cfg.MailTo) == 0 {
		return Config{}, fmt.Errorf("MAIL_TO is required when RESEND_API_KEY is set")
	}

	return cfg, nil
}

// MailEnabled reports whether the notifier should run at all.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != "" && len(c.MailTo) > 0
}

func secondsEnv(key string, def int) (time.Duration, error) {
	n, err := strconv.Atoi(getenv(key, strconv.Itoa(def)))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return time.Duration(n) * time.Second, nil
}

func boolenv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
