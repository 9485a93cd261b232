// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Messages MessagesConfig `yaml:"messages"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080"`
}

// StoreConfig selects and configures the state store backend.
type StoreConfig struct {
	Driver   string         `yaml:"driver" default:"sqlite" validate:"oneof=memory sqlite"`
	Settings map[string]any `yaml:"settings"`
}

// CatalogConfig locates the track catalog and the excluded numbers.
type CatalogConfig struct {
	Path        string `yaml:"path" validate:"required"`
	Unavailable []int  `yaml:"unavailable"`
}

// MessagesConfig represents the spoken responses. Templates may carry one
// fmt verb where a track number or slot value is substituted.
type MessagesConfig struct {
	Welcome          string `yaml:"welcome" default:"Welcome, try asking for a hymn by number or name"`
	Reprompt         string `yaml:"reprompt" default:"try asking for a hymn by number or name"`
	Help             string `yaml:"help" default:"You can ask me for a hymn by name or number, for example: play number 203. To move between hymns say next, previous or pause"`
	Goodbye          string `yaml:"goodbye" default:"Goodbye!"`
	DefaultError     string `yaml:"default_error" default:"Sorry, I could not understand you, please repeat"`
	EndOfList        string `yaml:"end_of_list" default:"You have reached the end of the list"`
	StartOfList      string `yaml:"start_of_list" default:"You have reached the start of the list"`
	LoopOn           string `yaml:"loop_on" default:"Loop turned on."`
	LoopOff          string `yaml:"loop_off" default:"Loop turned off."`
	NoSlot           string `yaml:"no_slot" default:"Sorry, that hymn does not exist, try asking for another hymn by number or name"`
	TrackNotFound    string `yaml:"track_not_found" default:"Could not find hymn %s, try asking for another hymn by number or name"`
	TrackUnavailable string `yaml:"track_unavailable" default:"Hymn %d cannot be played for copyright reasons, try asking for another hymn by number or name"`
	CardTitle        string `yaml:"card_title" default:"Playing hymn number %d"`
}

// Load loads configuration from a YAML file. Environment variables take
// precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("HYMNBOX_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HYMNBOX_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("HYMNBOX_CATALOG"); v != "" {
		c.Catalog.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// GetMessage returns the message template for the given code.
func (c *Config) GetMessage(code string) string {
	switch code {
	case "welcome":
		return c.Messages.Welcome
	case "reprompt":
		return c.Messages.Reprompt
	case "help":
		return c.Messages.Help
	case "goodbye":
		return c.Messages.Goodbye
	case "end_of_list":
		return c.Messages.EndOfList
	case "start_of_list":
		return c.Messages.StartOfList
	case "loop_on":
		return c.Messages.LoopOn
	case "loop_off":
		return c.Messages.LoopOff
	case "no_slot":
		return c.Messages.NoSlot
	case "track_not_found":
		return c.Messages.TrackNotFound
	case "track_unavailable":
		return c.Messages.TrackUnavailable
	case "card_title":
		return c.Messages.CardTitle
	default:
		return c.Messages.DefaultError
	}
}
