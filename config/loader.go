package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable holding the MBTA API key
const APIKeyEnv = "MBTA_APIKEY"

// ErrMissingAPIKey is returned when MBTA_APIKEY is not set
var ErrMissingAPIKey = errors.New("apikey configuration is not set. Set with environment variable " + APIKeyEnv +
	". Get a free key from the MBTA website https://api-v3.mbta.com/")

// DefaultPaths are tried in order when no config path is given
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Default returns the built-in configuration used when no config file exists.
func Default() AppConfig {
	return AppConfig{
		API: APIConfig{
			BaseURL:   "https://api-v3.mbta.com",
			TimeoutMS: 10000,
		},
		Boards: []Pair{
			{Route: "Green-E", Stop: "place-mgngl"},
			{Route: "Red", Stop: "place-cntsq"},
		},
		Poll:    PollConfig{IntervalMS: 30000},
		Source:  SourceAPI,
		Display: DisplayConfig{PreviewPath: "board.png"},
		AMQP:    AMQPConfig{TTLMS: 60000},
	}
}

// LoadAppConfig loads, completes and validates the application configuration.
// An explicit path must exist; with an empty path the DefaultPaths are tried
// and the built-in defaults are used when none exists.
func LoadAppConfig(path string) (AppConfig, error) {
	cfg := Default()

	data, err := readConfigFile(path)
	if err != nil {
		return cfg, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.API.Key = os.Getenv(APIKeyEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return data, nil
	}
	for _, p := range DefaultPaths {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return nil, nil
}

// Validate checks struct tags and the settings each source requires.
func (c AppConfig) Validate() error {
	if c.API.Key == "" {
		return ErrMissingAPIKey
	}
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Source == SourceGTFSRT {
		if c.GTFS.StaticURL == "" {
			return errors.New("invalid config: gtfs.staticURL is required for the gtfsrt source")
		}
		if c.GTFSRT.TripUpdatesURL == "" {
			return errors.New("invalid config: gtfsrt.tripUpdatesURL is required for the gtfsrt source")
		}
	}
	return nil
}

// PollInterval is the sleep between two boards.
func (c AppConfig) PollInterval() time.Duration {
	return time.Duration(c.Poll.IntervalMS) * time.Millisecond
}

// APITimeout bounds a single upstream request; zero means no timeout.
func (c AppConfig) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}
