package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Report configuration
	Report struct {
		// Flat file the listings are loaded from
		InputFile string `env:"AGENT_INPUT_FILE" envDefault:"properties.txt"`

		// File the report is written to, next to stdout
		OutputFile string `env:"AGENT_OUTPUT_FILE" envDefault:"report.txt"`

		// Report rendering, "text" or "json"
		Format string `env:"AGENT_REPORT_FORMAT" envDefault:"text"`

		// City whose most expensive listing is summarised in the report
		City string `env:"AGENT_REPORT_CITY" envDefault:"Budapest"`

		// Discount percentage applied to every listing after loading
		Discount int `env:"AGENT_DISCOUNT" envDefault:"0"`

		// Load the built-in dataset when the input file cannot be opened
		Fallback bool `env:"AGENT_FALLBACK" envDefault:"true"`
	}

	Log struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
	}

	HTTP struct {
		Port        string   `env:"HTTP_PORT" envDefault:"5250"`
		CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	}
}

// Overrides holds values set explicitly on the command line. Nil fields leave
// the loaded value untouched.
type Overrides struct {
	InputFile  *string
	OutputFile *string
	Format     *string
	City       *string
	Discount   *int
	Fallback   *bool
	Port       *string
}

// LoadConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the .env file. The
// result is not validated: apply overrides first, then call Validate.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Apply copies every set override into the configuration.
func (c *Config) Apply(o Overrides) {
	if o.InputFile != nil {
		c.Report.InputFile = *o.InputFile
	}
	if o.OutputFile != nil {
		c.Report.OutputFile = *o.OutputFile
	}
	if o.Format != nil {
		c.Report.Format = *o.Format
	}
	if o.City != nil {
		c.Report.City = *o.City
	}
	if o.Discount != nil {
		c.Report.Discount = *o.Discount
	}
	if o.Fallback != nil {
		c.Report.Fallback = *o.Fallback
	}
	if o.Port != nil {
		c.HTTP.Port = *o.Port
	}
}

// Validate checks the values that cannot be expressed with struct tags.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Report.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported report format %q", c.Report.Format)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	if c.HTTP.Port == "" {
		return errors.New("HTTP_PORT is required")
	}
	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
