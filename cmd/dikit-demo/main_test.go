package main

import (
	"strings"
	"testing"

	"github.com/kbukum/dikit/config"
	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
)

func newDemoContainer(t *testing.T, lifetime string) *di.Container {
	t.Helper()
	c := di.New(di.WithName("demo-test"), di.WithLogger(logger.Nop()))
	cfg := GreetingConfig{Salutation: "Hi", Lifetime: lifetime, Names: []string{"ada"}}
	if err := register(c, cfg, logger.Nop()); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRegister_AllShapes(t *testing.T) {
	c := newDemoContainer(t, "singleton")

	shapes := make(map[di.Shape]bool)
	lifetimes := make(map[di.Lifetime]int)
	for _, r := range c.Registrations() {
		shapes[r.Shape] = true
		lifetimes[r.Lifetime]++
	}
	for _, s := range []di.Shape{di.ShapeType, di.ShapeInstance, di.ShapeFunc, di.ShapeProvider} {
		if !shapes[s] {
			t.Errorf("expected a %s registration", s)
		}
	}
	if lifetimes[di.Singleton] == 0 || lifetimes[di.Transient] == 0 {
		t.Errorf("expected both lifetimes, got %v", lifetimes)
	}
}

func TestGreeter_Greet(t *testing.T) {
	c := newDemoContainer(t, "singleton")
	g := di.MustGetService[*Greeter](c)

	first, err := g.Greet("ada")
	if err != nil {
		t.Fatalf("Greet failed: %v", err)
	}
	second, err := g.Greet("ada")
	if err != nil {
		t.Fatalf("Greet failed: %v", err)
	}

	if first.Line != "Hi, Ada!" {
		t.Errorf("expected 'Hi, Ada!', got %q", first.Line)
	}
	if first == second || first.RequestID == second.RequestID {
		t.Error("expected a fresh envelope and request id per greeting")
	}
	if second.Count != 2 {
		t.Errorf("expected the shared store to count 2, got %d", second.Count)
	}
	if di.MustGetService[*Greeter](c) != g {
		t.Error("expected a singleton greeter")
	}
	if got := di.MustGetService[*Stats](c).greetings.Load(); got != 2 {
		t.Errorf("expected 2 greetings counted, got %d", got)
	}
}

func TestGreeter_TransientLifetime(t *testing.T) {
	c := newDemoContainer(t, "transient")
	if di.MustGetService[*Greeter](c) == di.MustGetService[*Greeter](c) {
		t.Error("expected a new greeter per resolution")
	}
}

func TestRegister_BadLifetime(t *testing.T) {
	c := di.New(di.WithLogger(logger.Nop()))
	err := register(c, GreetingConfig{Lifetime: "scoped"}, logger.Nop())
	if err == nil {
		t.Fatal("expected error for unknown lifetime")
	}
}

func TestDemoConfig_Defaults(t *testing.T) {
	cfg := DemoConfig{ServiceConfig: config.ServiceConfig{Name: "dikit-demo"}}
	cfg.ApplyDefaults()

	if cfg.Container.Name != "dikit-demo" {
		t.Errorf("expected container named after the service, got %q", cfg.Container.Name)
	}
	if cfg.Greeting.Lifetime != "singleton" || cfg.Greeting.Salutation != "Hello" {
		t.Errorf("unexpected greeting defaults %+v", cfg.Greeting)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestDemoConfig_Invalid(t *testing.T) {
	cfg := DemoConfig{ServiceConfig: config.ServiceConfig{Name: "dikit-demo"}}
	cfg.ApplyDefaults()
	cfg.Telemetry.Endpoint = "not an endpoint"
	cfg.Greeting.Lifetime = "scoped"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"telemetry.endpoint", "greeting.lifetime"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
