package installer

import (
	"fmt"

	"pisetup/internal/logger"
	"pisetup/internal/runner"
)

// Kind classifies why a package operation did not succeed.
type Kind int

const (
	// NotFound means the package index has no entry for the name; no install
	// command was attempted.
	NotFound Kind = iota
	// InstallFailed means the package exists but the install command exited nonzero.
	InstallFailed
)

// PackageError reports a failed package install, distinguishing a missing index
// entry from a genuine install failure. Both count the same for group tallying,
// but the log and the console get a distinct message.
type PackageError struct {
	Name string
	Kind Kind
	Err  error
}

func (e *PackageError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("package %s not found in index", e.Name)
	default:
		return fmt.Sprintf("package %s install failed: %v", e.Name, e.Err)
	}
}

func (e *PackageError) Unwrap() error { return e.Err }

// Installer installs OS packages through apt. Existence is checked against the
// package index before any privileged install call, so a renamed or removed
// package fails fast instead of burning an apt-get run.
type Installer struct {
	run *runner.Runner
}

// New builds an Installer over the given runner.
func New(run *runner.Runner) *Installer {
	return &Installer{run: run}
}

// Install installs one package. It returns nil when the package ends up installed,
// *PackageError{Kind: NotFound} when the index has no such package (zero install
// side effects in that case), and *PackageError{Kind: InstallFailed} wrapping the
// runner's error when the install command itself fails.
func (i *Installer) Install(name string) error {
	if err := i.run.Quiet(runner.Cmd("apt-cache", "show", name)); err != nil {
		logger.Warn("[WARN] Package %s not found in index, skipping\n", name)
		i.run.Journal().Warn("package %s not found in apt index, skipping install", name)
		return &PackageError{Name: name, Kind: NotFound}
	}

	err := i.run.Run(runner.Cmd("sudo", "apt-get", "install", "-y", name), "Installing "+name)
	if err != nil {
		return &PackageError{Name: name, Kind: InstallFailed, Err: err}
	}
	return nil
}
