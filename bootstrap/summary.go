package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
)

// Summary describes the application after startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a startup summary.
func NewSummary(serviceName, version string, startup time.Duration) *Summary {
	return &Summary{serviceName: serviceName, version: version, startupDuration: startup}
}

// Render formats the summary with one line per registration.
func (s *Summary) Render(regs []di.RegistrationInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s started in %s\n", s.serviceName, s.version, s.startupDuration.Round(time.Millisecond))
	fmt.Fprintf(&b, "Services (%d):\n", len(regs))
	for _, r := range regs {
		state := ""
		if r.Lifetime == di.Singleton {
			state = " (pending)"
			if r.Realized {
				state = " (realized)"
			}
		}
		fmt.Fprintf(&b, "  %-9s %-8s %s%s\n", r.Lifetime, r.Shape, r.Name, state)
	}
	return b.String()
}

// Display logs the summary for the container's registrations.
func (s *Summary) Display(c *di.Container, log *logger.Logger) {
	regs := c.Registrations()
	log.Info("Startup summary\n"+s.Render(regs), logger.Fields(
		logger.FieldContainer, c.Name(),
		"services", len(regs),
	))
}
