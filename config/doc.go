// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (when present) and validated using
// struct tags. The MBTA API key always comes from the MBTA_APIKEY environment
// variable. Without a config file the built-in board list is used.
package config
