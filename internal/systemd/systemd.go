package systemd

import (
	"fmt"
	"time"

	"pisetup/internal/logger"
	"pisetup/internal/runner"
)

// Default polling bounds for WaitUntilActive.
const (
	DefaultMaxAttempts = 5
	DefaultInterval    = 2 * time.Second
)

// ProbeTimeout means a service never reported active within the polling bound.
type ProbeTimeout struct {
	Service  string
	Attempts int
}

func (e *ProbeTimeout) Error() string {
	return fmt.Sprintf("service %s not active after %d attempts", e.Service, e.Attempts)
}

// Manager talks to systemctl: enabling and starting units, and polling a unit's
// active state with bounded retries.
type Manager struct {
	run *runner.Runner

	// sleep is swapped out in tests so probes do not actually wait.
	sleep func(time.Duration)
}

// New builds a Manager over the given runner.
func New(run *runner.Runner) *Manager {
	return &Manager{run: run, sleep: time.Sleep}
}

// Enable enables the unit so it starts on boot.
func (m *Manager) Enable(service string) error {
	return m.run.Run(runner.Cmd("sudo", "systemctl", "enable", service), "Enabling "+service+" service")
}

// Start starts the unit now.
func (m *Manager) Start(service string) error {
	return m.run.Run(runner.Cmd("sudo", "systemctl", "start", service), "Starting "+service+" service")
}

// WaitUntilActive polls `systemctl is-active` once per attempt, returning true on
// the first active observation and false after maxAttempts non-active ones. It
// sleeps interval between attempts but not after the last. A failing status query
// counts the same as "not active yet"; the query error is journaled so the
// distinction is not lost entirely.
func (m *Manager) WaitUntilActive(service string, maxAttempts int, interval time.Duration) bool {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	logger.Info("[INFO] Waiting for %s to become active...\n", service)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.run.Quiet(runner.Cmd("systemctl", "is-active", "--quiet", service))
		if err == nil {
			logger.Success("[OK] %s is active\n", service)
			m.run.Journal().Info("service %s active on attempt %d", service, attempt)
			return true
		}
		m.run.Journal().Warn("service %s not active (attempt %d/%d): %v", service, attempt, maxAttempts, err)
		if attempt < maxAttempts {
			m.sleep(interval)
		}
	}

	logger.Error("[ERROR] %s did not become active after %d attempts\n", service, maxAttempts)
	return false
}
