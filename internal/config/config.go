package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Notifications struct {
		// PollIntervalMinutes is the steady-state delivery cadence. Polling is
		// deliberate: a fixed interval is more robust than a long-lived push
		// connection on flaky networks.
		PollIntervalMinutes int `yaml:"poll_interval_minutes"`
	} `yaml:"notifications"`
}

// PollInterval returns the notification poll cadence with a minutes-scale default.
func (c *Config) PollInterval() time.Duration {
	if c.Notifications.PollIntervalMinutes <= 0 {
		return 3 * time.Minute
	}
	return time.Duration(c.Notifications.PollIntervalMinutes) * time.Minute
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	// Environment-variable mode (tests, containers).
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	if v, err := strconv.Atoi(os.Getenv("NOTIFICATION_POLL_MINUTES")); err == nil {
		cfg.Notifications.PollIntervalMinutes = v
	}

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
