package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	TMDB   TMDB   `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	Server Server `json:"server" yaml:"server" mapstructure:"server"`
	Embed  Embed  `json:"embed" yaml:"embed" mapstructure:"embed"`
	Search Search `json:"search" yaml:"search" mapstructure:"search"`
	Log    Log    `json:"log" yaml:"log" mapstructure:"log"`
}

type TMDB struct {
	APIURL            string        `json:"apiURL" yaml:"apiURL" mapstructure:"apiURL" validate:"required,url"`
	AccessToken       string        `json:"accessToken" yaml:"accessToken" mapstructure:"accessToken" validate:"required"`
	ImageBaseURL      string        `json:"imageBaseURL" yaml:"imageBaseURL" mapstructure:"imageBaseURL" validate:"required,url"`
	Language          string        `json:"language" yaml:"language" mapstructure:"language" validate:"required"`
	Timeout           time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"min=1s,max=30s"`
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond" mapstructure:"requestsPerSecond" validate:"gte=0"`
	Burst             int           `json:"burst" yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

type Server struct {
	Port              int           `json:"port" yaml:"port" mapstructure:"port" validate:"min=1,max=65535"`
	CORSOrigins       []string      `json:"corsOrigins" yaml:"corsOrigins" mapstructure:"corsOrigins"`
	RequestsPerMinute int           `json:"requestsPerMinute" yaml:"requestsPerMinute" mapstructure:"requestsPerMinute" validate:"gte=0"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`
	TrustProxy        bool          `json:"trustProxy" yaml:"trustProxy" mapstructure:"trustProxy"`
}

// Embed configures play links into the video embed provider and the hosts
// that may be placed in a frame.
type Embed struct {
	BaseURL      string       `json:"baseURL" yaml:"baseURL" mapstructure:"baseURL" validate:"required,url"`
	AllowedHosts []string     `json:"allowedHosts" yaml:"allowedHosts" mapstructure:"allowedHosts" validate:"required,min=1,dive,hostname"`
	Options      EmbedOptions `json:"options" yaml:"options" mapstructure:"options"`
}

type EmbedOptions struct {
	PrimaryColor   string `json:"primaryColor" yaml:"primaryColor" mapstructure:"primaryColor" validate:"omitempty,hexadecimal"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondaryColor" mapstructure:"secondaryColor" validate:"omitempty,hexadecimal"`
	IconColor      string `json:"iconColor" yaml:"iconColor" mapstructure:"iconColor" validate:"omitempty,hexadecimal"`
	Icons          string `json:"icons" yaml:"icons" mapstructure:"icons"`
	Title          bool   `json:"title" yaml:"title" mapstructure:"title"`
	Poster         bool   `json:"poster" yaml:"poster" mapstructure:"poster"`
	Autoplay       bool   `json:"autoplay" yaml:"autoplay" mapstructure:"autoplay"`
	NextButton     bool   `json:"nextButton" yaml:"nextButton" mapstructure:"nextButton"`
}

type Search struct {
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit" mapstructure:"defaultLimit" validate:"min=1,max=100"`
}

type Log struct {
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `json:"json" yaml:"json" mapstructure:"json"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

var validate = validator.New()

// Validate checks the configuration needed to talk to TMDB and serve requests.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
