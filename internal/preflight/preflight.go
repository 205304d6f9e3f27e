package preflight

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"pisetup/internal/config"
	"pisetup/internal/logger"
	"pisetup/internal/runner"
)

// Error is a fatal precondition failure: the environment does not match what the
// tool needs (wrong board, missing privilege helper, user declined to continue).
// Unlike operation failures it halts the whole run with a nonzero exit.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// Checker verifies the hard preconditions before any group runs.
type Checker struct {
	cfg  config.Config
	exec runner.Executor

	// in is the confirmation prompt source, stdin in production. One shared
	// reader so consecutive prompts do not lose buffered input.
	in *bufio.Reader

	// overridable in tests
	modelPath string
	lookPath  func(string) (string, error)
	freeMB    func(path string) (uint64, error)
}

// New builds a Checker reading confirmations from in.
func New(cfg config.Config, exec runner.Executor, in io.Reader) *Checker {
	return &Checker{
		cfg:       cfg,
		exec:      exec,
		in:        bufio.NewReader(in),
		modelPath: "/proc/device-tree/model",
		lookPath:  defaultLookPath,
		freeMB:    statfsFreeMB,
	}
}

func defaultLookPath(name string) (string, error) { return exec.LookPath(name) }

func statfsFreeMB(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return st.Bavail * uint64(st.Bsize) / (1024 * 1024), nil
}

// Verify runs all precondition checks in order. Board and privilege-helper
// mismatches fail outright; network and disk shortfalls give the user the choice
// to continue anyway, and a decline is the failure.
func (c *Checker) Verify() error {
	if err := c.checkBoard(); err != nil {
		return err
	}
	if err := c.checkPrivilegeHelper(); err != nil {
		return err
	}
	if err := c.checkNetwork(); err != nil {
		return err
	}
	return c.checkDisk()
}

// checkBoard reads the device-tree model string and matches it against the
// configured board family.
func (c *Checker) checkBoard() error {
	model, err := os.ReadFile(c.modelPath)
	if err != nil {
		return &Error{Reason: fmt.Sprintf("cannot read board model from %s: %v", c.modelPath, err)}
	}
	// The device-tree file is NUL terminated.
	trimmed := strings.TrimRight(string(model), "\x00")
	if !strings.Contains(trimmed, c.cfg.BoardFamily) {
		return &Error{Reason: fmt.Sprintf("this tool targets %s boards, found %q", c.cfg.BoardFamily, trimmed)}
	}
	logger.Debug("[DEBUG] Board model: %s\n", trimmed)
	return nil
}

// checkPrivilegeHelper verifies that sudo and apt-get exist on PATH.
func (c *Checker) checkPrivilegeHelper() error {
	for _, tool := range []string{"sudo", "apt-get"} {
		if _, err := c.lookPath(tool); err != nil {
			return &Error{Reason: fmt.Sprintf("required tool %s not found on PATH", tool)}
		}
	}
	return nil
}

// checkNetwork pings the configured hosts; one answer is enough. With no host
// reachable the user may still choose to continue (offline mirrors exist).
func (c *Checker) checkNetwork() error {
	for _, host := range c.cfg.PingHosts {
		cmd := runner.Cmd("ping", "-c", "1", "-W", "2", host)
		if _, err := c.exec.CombinedOutput(cmd); err == nil {
			logger.Debug("[DEBUG] Network reachable via %s\n", host)
			return nil
		}
	}
	logger.Warn("[WARN] No network reachability (tried %s)\n", strings.Join(c.cfg.PingHosts, ", "))
	if !c.confirm("Continue without network access? [y/N]: ") {
		return &Error{Reason: "user declined to continue without network access"}
	}
	return nil
}

// checkDisk verifies the free-space floor on /.
func (c *Checker) checkDisk() error {
	free, err := c.freeMB("/")
	if err != nil {
		logger.Warn("[WARN] Cannot determine free disk space: %v\n", err)
		return nil
	}
	if free >= c.cfg.MinFreeMB {
		logger.Debug("[DEBUG] Free disk space: %d MiB\n", free)
		return nil
	}
	logger.Warn("[WARN] Only %d MiB free on /, %d MiB recommended\n", free, c.cfg.MinFreeMB)
	if !c.confirm("Continue with low disk space? [y/N]: ") {
		return &Error{Reason: "user declined to continue with low disk space"}
	}
	return nil
}

func (c *Checker) confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
