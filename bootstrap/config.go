package bootstrap

import (
	"github.com/kbukum/dikit/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods.
//
//	type DemoConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Container di.Config  `yaml:"container" mapstructure:"container"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithContainerConfig(cfg.Container))
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
