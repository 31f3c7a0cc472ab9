package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"shuttleboard/sheet"
	"shuttleboard/timetable"
)

const (
	KeySourceURL      = "source.url"
	KeyColumnsTime    = "columns.time"
	KeyColumnsContact = "columns.contact"
	KeyServerPort     = "server.port"
)

type Config struct {
	Source  SourceConfig  `mapstructure:"source" validate:"required"`
	Columns ColumnsConfig `mapstructure:"columns" validate:"required"`
	Server  ServerConfig  `mapstructure:"server"`
}

type SourceConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

type ColumnsConfig struct {
	Time    string `mapstructure:"time" validate:"required"`
	Contact string `mapstructure:"contact"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# shuttleboard configuration
source:
  # Published CSV export of the timetable sheet.
  url: "` + sheet.DefaultURL + `"

columns:
  time: "` + timetable.DefaultTimeColumn + `"
  contact: "` + timetable.DefaultContactColumn + `"

server:
  port: 8080
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Source.URL = strings.TrimSpace(cfg.Source.URL)
	cfg.Columns.Time = strings.TrimSpace(cfg.Columns.Time)
	cfg.Columns.Contact = strings.TrimSpace(cfg.Columns.Contact)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceURL, sheet.DefaultURL)
	v.SetDefault(KeyColumnsTime, timetable.DefaultTimeColumn)
	v.SetDefault(KeyColumnsContact, timetable.DefaultContactColumn)
	v.SetDefault(KeyServerPort, 8080)
}
