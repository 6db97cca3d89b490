// Command dikit-demo is a composition root that wires a small greeting
// service through the dikit container.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/dikit/bootstrap"
	"github.com/kbukum/dikit/config"
	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
	"github.com/kbukum/dikit/observability"
)

const serviceName = "dikit-demo"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg DemoConfig
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()

	var stopHooks []bootstrap.Hook
	if cfg.Telemetry.Endpoint != "" {
		hooks, err := initTelemetry(ctx, &cfg)
		if err != nil {
			return err
		}
		stopHooks = hooks
	}

	app, err := bootstrap.NewApp(&cfg, bootstrap.WithContainerConfig(cfg.Container))
	if err != nil {
		return err
	}
	app.OnStop(stopHooks...)

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*DemoConfig]) error {
		return register(a.Container, a.Cfg.Greeting, a.Logger)
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		greeter, err := di.GetRequiredService[*Greeter](app.Container)
		if err != nil {
			return err
		}
		for _, name := range cfg.Greeting.Names {
			if err := ctx.Err(); err != nil {
				return err
			}
			env, err := greeter.Greet(name)
			if err != nil {
				return err
			}
			app.Logger.Info(env.Line, logger.Fields("request_id", env.RequestID, "count", env.Count))
		}

		stats := di.MustGetService[*Stats](app.Container)
		app.Logger.Info("done", logger.Fields("greetings", stats.greetings.Load()))
		bootstrap.NewSummary(app.Name, app.Version, 0).Display(app.Container, app.Logger)
		return nil
	})
}

// initTelemetry starts OTLP exporters and turns on container instruments.
// The returned hooks flush and stop the exporters.
func initTelemetry(ctx context.Context, cfg *DemoConfig) ([]bootstrap.Hook, error) {
	tcfg := observability.DefaultTracerConfig(cfg.Name)
	tcfg.Endpoint = cfg.Telemetry.Endpoint
	tcfg.SampleRate = cfg.Telemetry.SampleRate
	tcfg.Environment = cfg.Environment
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("tracer: %w", err)
	}

	mcfg := observability.DefaultMeterConfig(cfg.Name)
	mcfg.Endpoint = cfg.Telemetry.Endpoint
	mcfg.Environment = cfg.Environment
	mp, err := observability.InitMeter(ctx, mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("meter: %w", err)
	}

	cfg.Container.Tracing = true
	cfg.Container.Metrics = true

	return []bootstrap.Hook{
		func(ctx context.Context) error { return mp.Shutdown(ctx) },
		func(ctx context.Context) error { return tp.Shutdown(ctx) },
	}, nil
}
