package runner

import (
	"fmt"
	"os/exec"
	"strings"

	"pisetup/internal/logfile"
	"pisetup/internal/logger"
)

// Command is a structured external invocation: program name plus argument list.
// Commands are built from literals and config values, never from interpolated
// shell strings, so there is no quoting or injection surface.
type Command struct {
	Program string
	Args    []string
}

// Cmd is a convenience constructor.
func Cmd(program string, args ...string) Command {
	return Command{Program: program, Args: args}
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Executor runs one Command and returns its combined stdout+stderr. A non-nil
// error means the command exited nonzero or could not be spawned at all.
// The production implementation shells out; tests substitute fakes.
type Executor interface {
	CombinedOutput(cmd Command) ([]byte, error)
}

// SystemExecutor invokes commands as real child processes.
type SystemExecutor struct{}

func (SystemExecutor) CombinedOutput(cmd Command) ([]byte, error) {
	return exec.Command(cmd.Program, cmd.Args...).CombinedOutput()
}

// ExecutionError reports a failed external command: nonzero exit or spawn failure.
type ExecutionError struct {
	Description string
	Command     Command
	Output      string
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Description, e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Runner executes external operations one at a time, journaling every outcome
// and emitting a short colored status line per operation. It never panics past
// the caller: spawn failures are mapped into *ExecutionError like any other.
type Runner struct {
	exec    Executor
	journal *logfile.Journal
}

// New builds a Runner over the given executor and journal.
func New(exec Executor, journal *logfile.Journal) *Runner {
	return &Runner{exec: exec, journal: journal}
}

// Run executes cmd in a fresh child process. It prints an info line before and a
// success/failure line after, and appends the command, its combined output and the
// outcome to the journal regardless of how it went. Returns nil on exit status
// zero, otherwise an *ExecutionError.
func (r *Runner) Run(cmd Command, description string) error {
	logger.Info("[INFO] %s...\n", description)
	logger.Debug("[DEBUG] Running command: %s\n", cmd)

	out, err := r.exec.CombinedOutput(cmd)
	if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
		r.journal.Debug("%s: output: %s", cmd, collapse(trimmed))
	}
	if err != nil {
		r.journal.Error("%s failed (%s): %v", description, cmd, err)
		logger.Error("[ERROR] %s failed: %v\n", description, err)
		return &ExecutionError{Description: description, Command: cmd, Output: string(out), Err: err}
	}

	r.journal.Info("%s succeeded (%s)", description, cmd)
	logger.Success("[OK] %s\n", description)
	return nil
}

// Quiet executes cmd without console output. Outcomes still reach the journal at
// debug level. Used for existence checks and status polls where per-call console
// noise would drown the real progress lines.
func (r *Runner) Quiet(cmd Command) error {
	out, err := r.exec.CombinedOutput(cmd)
	if err != nil {
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			r.journal.Debug("%s: %v: %s", cmd, err, collapse(trimmed))
		} else {
			r.journal.Debug("%s: %v", cmd, err)
		}
		return &ExecutionError{Description: cmd.String(), Command: cmd, Output: string(out), Err: err}
	}
	r.journal.Debug("%s: ok", cmd)
	return nil
}

// Journal exposes the runner's journal so collaborators (prober, groups) write to
// the same log file.
func (r *Runner) Journal() *logfile.Journal { return r.journal }

// collapse flattens multi-line command output onto the single journal line.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
