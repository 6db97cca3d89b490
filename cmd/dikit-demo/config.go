package main

import (
	"github.com/kbukum/dikit/config"
	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/validation"
)

// DemoConfig is loaded from cmd/dikit-demo/config.yml and DIKIT_DEMO_* env.
type DemoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Container di.Config       `yaml:"container" mapstructure:"container"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Greeting  GreetingConfig  `yaml:"greeting" mapstructure:"greeting"`
}

// TelemetryConfig enables OTLP export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"min=0,max=1"`
}

// GreetingConfig drives the demo services.
type GreetingConfig struct {
	Salutation string   `yaml:"salutation" mapstructure:"salutation" validate:"required"`
	Lifetime   string   `yaml:"lifetime" mapstructure:"lifetime" validate:"oneof=transient singleton"`
	Names      []string `yaml:"names" mapstructure:"names" validate:"min=1"`
}

func (c *DemoConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Container.ApplyDefaults()
	if c.Container.Name == "default" && c.Name != "" {
		c.Container.Name = c.Name
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
	if c.Greeting.Salutation == "" {
		c.Greeting.Salutation = "Hello"
	}
	if c.Greeting.Lifetime == "" {
		c.Greeting.Lifetime = "singleton"
	}
	if len(c.Greeting.Names) == 0 {
		c.Greeting.Names = []string{"world"}
	}
}

func (c *DemoConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}
