package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/dikit/config"
	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

type closingService struct{ closed bool }

func (s *closingService) Close() error {
	s.closed = true
	return nil
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Container == nil {
		t.Fatal("expected a container")
	}
	if app.Container.Name() != "test-svc" {
		t.Errorf("expected container named after the service, got %q", app.Container.Name())
	}
}

func TestNewApp_DefaultVersion(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc", ""), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Version == "" {
		t.Error("expected version to default to the build version")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, err := NewApp(newTestConfig("", "1.0.0"), WithLogger(logger.Nop()))
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if !strings.Contains(err.Error(), "config validation") {
		t.Errorf("expected config validation error, got %v", err)
	}
}

func TestNewApp_ContainerConfig(t *testing.T) {
	app, err := NewApp(newTestConfig("svc", "1.0.0"),
		WithLogger(logger.Nop()),
		WithContainerConfig(di.Config{Name: "wired", DuplicatePolicy: "replace"}),
	)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Container.Name() != "wired" {
		t.Errorf("expected container 'wired', got %q", app.Container.Name())
	}

	_, err = NewApp(newTestConfig("svc", "1.0.0"),
		WithLogger(logger.Nop()),
		WithContainerConfig(di.Config{DuplicatePolicy: "bogus"}),
	)
	if err == nil {
		t.Error("expected invalid container config to fail")
	}
}

func TestNewApp_WithContainer(t *testing.T) {
	c := di.New(di.WithName("custom"), di.WithLogger(logger.Nop()))
	app, err := NewApp(newTestConfig("svc", "1.0.0"), WithLogger(logger.Nop()), WithContainer(c))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Container != c {
		t.Error("expected the provided container")
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app, err := NewApp(newTestConfig("svc", "1.0.0"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	var order []string
	svc := &closingService{}
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		return di.AddSingletonFunc(a.Container, func() (*closingService, error) { return svc, nil })
	})
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		if svc.closed {
			return fmt.Errorf("service closed before OnStop")
		}
		return nil
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		got, err := di.GetRequiredService[*closingService](app.Container)
		if err != nil {
			return err
		}
		if got != svc {
			return fmt.Errorf("unexpected instance")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	if strings.Join(order, ",") != "configure,start,task,stop" {
		t.Errorf("unexpected lifecycle order %v", order)
	}
	if !svc.closed {
		t.Error("expected the container to close the realized singleton")
	}
}

func TestRunTask_TaskError(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", "1.0.0"), WithLogger(logger.Nop()))
	want := fmt.Errorf("task failed")
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return want })
	if err != want {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_ConfigureError(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", "1.0.0"), WithLogger(logger.Nop()))
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if err := di.AddTransient[fmt.Stringer, *closingService](a.Container); err != nil {
			return err
		}
		return nil
	})

	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "configuration failed") {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "NOT_ASSIGNABLE") {
		t.Errorf("expected the registration error, got %v", err)
	}
	if ran {
		t.Error("expected task not to run")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", "1.0.0"), WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := app.Run(ctx); err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
	if _, _, err := di.GetService[*closingService](app.Container); err == nil {
		t.Error("expected container to be closed after Run")
	}
}

func TestRunHooks(t *testing.T) {
	err := runHooks(context.Background(), []Hook{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return fmt.Errorf("broken") },
	})
	if err == nil || !strings.Contains(err.Error(), "hook 1 failed") {
		t.Errorf("expected hook 1 failure, got %v", err)
	}
}

func TestSummary_Render(t *testing.T) {
	c := di.New(di.WithLogger(logger.Nop()))
	_ = di.AddSingletonInstance(c, &closingService{})
	_ = di.AddTransientFunc(c, func() (int, error) { return 1, nil })

	out := NewSummary("svc", "1.0.0", 1500*time.Microsecond).Render(c.Registrations())
	for _, want := range []string{"svc 1.0.0 started", "Services (2)", "singleton", "instance", "(pending)", "transient", "func"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}
