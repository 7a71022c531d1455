package config

import (
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Calendar   CalendarConfig   `yaml:"calendar"`
	Caregiver  CaregiverConfig  `yaml:"caregiver"`
	Checklist  ChecklistConfig  `yaml:"checklist"`
	Push       PushConfig       `yaml:"push"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RequestIPHeader string   `yaml:"request_ip_header"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// CalendarConfig fixes the caregiver's day boundaries.
type CalendarConfig struct {
	Timezone         string         `yaml:"timezone"`
	Location         *time.Location `yaml:"-"`
	WeeklyWindowDays int            `yaml:"weekly_window_days"`
}

// CaregiverConfig identifies who recorded an observation.
type CaregiverConfig struct {
	DefaultAuthorID string `yaml:"default_author_id"`
	Header          string `yaml:"header"`
}

// ChecklistConfig selects the pack-list checklist backend. An empty
// RedisAddr keeps checklists in memory.
type ChecklistConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TTLHours      int           `yaml:"ttl_hours"`
	TTL           time.Duration `yaml:"-"`
}

// ReminderConfig schedules the evening pack-list push.
type ReminderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Time    string `yaml:"time"`
	Hour    int    `yaml:"-"`
	Minute  int    `yaml:"-"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 10
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver)
	}

	if cfg.Calendar.Timezone == "" {
		cfg.Calendar.Timezone = "Asia/Tokyo"
	}
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return fmt.Errorf("invalid calendar.timezone %q: %w", cfg.Calendar.Timezone, err)
	}
	cfg.Calendar.Location = loc
	if cfg.Calendar.WeeklyWindowDays <= 0 {
		cfg.Calendar.WeeklyWindowDays = 14
	}

	if cfg.Caregiver.DefaultAuthorID == "" {
		cfg.Caregiver.DefaultAuthorID = "parent"
	}
	if cfg.Caregiver.Header == "" {
		cfg.Caregiver.Header = "X-Caregiver-ID"
	}

	if cfg.Checklist.TTLHours <= 0 {
		cfg.Checklist.TTLHours = 48
	}
	cfg.Checklist.TTL = time.Duration(cfg.Checklist.TTLHours) * time.Hour

	if cfg.Reminder.Time == "" {
		cfg.Reminder.Time = "20:00"
	}
	hh, mm, err := ParseClock(cfg.Reminder.Time)
	if err != nil {
		return fmt.Errorf("invalid reminder.time: %w", err)
	}
	cfg.Reminder.Hour, cfg.Reminder.Minute = hh, mm

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	return nil
}

// ParseClock parses an "HH:MM" wall-clock time.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
