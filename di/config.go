package di

import (
	"github.com/kbukum/dikit/observability"
	"github.com/kbukum/dikit/validation"
)

// Config is the file and environment form of the container options.
type Config struct {
	// Name identifies the container in logs and telemetry.
	Name string `mapstructure:"name" validate:"omitempty,identifier"`
	// DuplicatePolicy is one of reject, replace or keep.
	DuplicatePolicy string `mapstructure:"duplicate_policy" validate:"omitempty,oneof=reject replace keep"`
	// Metrics enables instruments on the global meter provider.
	Metrics bool `mapstructure:"metrics"`
	// Tracing enables spans on the global tracer provider.
	Tracing bool `mapstructure:"tracing"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = DuplicateReject.String()
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// NewFromConfig validates cfg and creates a container from it. opts are
// applied after cfg and override it.
func NewFromConfig(cfg Config, opts ...Option) (*Container, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithName(cfg.Name),
		WithDuplicatePolicy(policy),
	}
	if cfg.Metrics {
		base = append(base, WithMeter(observability.Meter()))
	}
	if cfg.Tracing {
		base = append(base, WithTracer(observability.Tracer()))
	}
	return New(append(base, opts...)...), nil
}
