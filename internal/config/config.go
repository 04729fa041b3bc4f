package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the CLI.
type Config struct {
	// Fraktjakt session
	ConsignorID  string `envconfig:"FRAKTJAKT_CONSIGNOR_ID"`
	ConsignorKey string `envconfig:"FRAKTJAKT_CONSIGNOR_KEY"`
	Environment  string `envconfig:"FRAKTJAKT_ENVIRONMENT" default:"test"`
	Currency     string `envconfig:"FRAKTJAKT_CURRENCY" default:"SEK"`
	Language     string `envconfig:"FRAKTJAKT_LANGUAGE" default:"sv"`
	UseMock      bool   `envconfig:"FRAKTJAKT_USE_MOCK" default:"false"`

	// Sender address for orders that submit a complete shipment
	SenderStreet1    string `envconfig:"FRAKTJAKT_SENDER_STREET1"`
	SenderStreet2    string `envconfig:"FRAKTJAKT_SENDER_STREET2"`
	SenderPostalCode string `envconfig:"FRAKTJAKT_SENDER_POSTAL_CODE"`
	SenderCity       string `envconfig:"FRAKTJAKT_SENDER_CITY"`
	SenderCountry    string `envconfig:"FRAKTJAKT_SENDER_COUNTRY" default:"SE"`

	// Telemetry
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"fraktjakt-cli"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
