package provision

import (
	"pisetup/internal/config"
	"pisetup/internal/group"
	"pisetup/internal/installer"
	"pisetup/internal/logfile"
	"pisetup/internal/runner"
	"pisetup/internal/systemd"
)

// Catalog builds the operation groups from config and the external collaborators
// (runner, installer, service manager). Groups are constructed fresh for every
// execution; nothing from a previous run is carried over.
type Catalog struct {
	cfg     config.Config
	run     *runner.Runner
	pkgs    *installer.Installer
	units   *systemd.Manager
	journal *logfile.Journal
}

// NewCatalog wires a Catalog. The installer and service manager share the
// runner's journal.
func NewCatalog(cfg config.Config, run *runner.Runner) *Catalog {
	return &Catalog{
		cfg:     cfg,
		run:     run,
		pkgs:    installer.New(run),
		units:   systemd.New(run),
		journal: run.Journal(),
	}
}

// Group constructs the named group. Unknown ids yield an empty group, which
// executes as a vacuous success.
func (c *Catalog) Group(id GroupID) *group.Group {
	switch id {
	case Update:
		return c.update()
	case Essentials:
		return c.packageGroup("Essentials", c.cfg.Packages.Essentials, 0)
	case Configuration:
		return c.configuration()
	case Monitoring:
		// One working collector is enough for the board to be observable.
		return c.packageGroup("Monitoring", c.cfg.Packages.Monitoring, 1)
	case NetworkTools:
		return c.packageGroup("Network tools", c.cfg.Packages.NetworkTools, 0)
	case Database:
		return c.database()
	case GPS:
		return c.gps()
	default:
		return &group.Group{Name: string(id), Journal: c.journal}
	}
}

// update refreshes the package index and brings installed packages current.
func (c *Catalog) update() *group.Group {
	return &group.Group{
		Name:    "System update",
		Journal: c.journal,
		Operations: []group.Operation{
			c.runOp("Updating package index", runner.Cmd("sudo", "apt-get", "update")),
			c.runOp("Upgrading installed packages", runner.Cmd("sudo", "apt-get", "-y", "upgrade")),
			c.runOp("Removing unused packages", runner.Cmd("sudo", "apt-get", "-y", "autoremove")),
		},
	}
}

// configuration applies board settings through raspi-config's non-interactive mode.
func (c *Catalog) configuration() *group.Group {
	return &group.Group{
		Name:    "Board configuration",
		Journal: c.journal,
		Operations: []group.Operation{
			c.runOp("Expanding root filesystem", runner.Cmd("sudo", "raspi-config", "nonint", "do_expand_rootfs")),
			c.runOp("Setting locale", runner.Cmd("sudo", "raspi-config", "nonint", "do_change_locale", "en_US.UTF-8")),
			c.runOp("Setting timezone", runner.Cmd("sudo", "raspi-config", "nonint", "do_change_timezone", "Etc/UTC")),
			c.runOp("Enabling SSH", runner.Cmd("sudo", "raspi-config", "nonint", "do_ssh", "0")),
			c.runOp("Enabling VNC", runner.Cmd("sudo", "raspi-config", "nonint", "do_vnc", "0")),
		},
	}
}

// database installs the server, brings the unit up, and waits for it to answer.
func (c *Catalog) database() *group.Group {
	ops := append(c.installOps(c.cfg.Packages.Database), c.unitOps("mariadb")...)
	return &group.Group{Name: "Database", Journal: c.journal, Operations: ops}
}

// gps installs the GPS/time stack and brings gpsd up.
func (c *Catalog) gps() *group.Group {
	ops := append(c.installOps(c.cfg.Packages.GPS), c.unitOps("gpsd")...)
	return &group.Group{Name: "GPS", Journal: c.journal, Operations: ops}
}

// packageGroup builds a group that installs one package per operation.
func (c *Catalog) packageGroup(name string, packages []string, minSuccess int) *group.Group {
	return &group.Group{
		Name:       name,
		Journal:    c.journal,
		MinSuccess: minSuccess,
		Operations: c.installOps(packages),
	}
}

func (c *Catalog) installOps(packages []string) []group.Operation {
	ops := make([]group.Operation, 0, len(packages))
	for _, pkg := range packages {
		ops = append(ops, group.Operation{
			Description: "Install " + pkg,
			Action:      func() error { return c.pkgs.Install(pkg) },
		})
	}
	return ops
}

// unitOps enables, starts, and waits on one systemd unit.
func (c *Catalog) unitOps(service string) []group.Operation {
	return []group.Operation{
		{
			Description: "Enable " + service,
			Action:      func() error { return c.units.Enable(service) },
		},
		{
			Description: "Start " + service,
			Action:      func() error { return c.units.Start(service) },
		},
		{
			Description: "Wait for " + service,
			Action: func() error {
				if !c.units.WaitUntilActive(service, systemd.DefaultMaxAttempts, systemd.DefaultInterval) {
					return &systemd.ProbeTimeout{Service: service, Attempts: systemd.DefaultMaxAttempts}
				}
				return nil
			},
		},
	}
}

func (c *Catalog) runOp(description string, cmd runner.Command) group.Operation {
	return group.Operation{
		Description: description,
		Action:      func() error { return c.run.Run(cmd, description) },
	}
}
