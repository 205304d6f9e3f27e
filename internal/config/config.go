package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pisetup/internal/logger"
)

// Config carries everything the provisioning run needs that is data rather than
// code: package lists per group, services to wait on, preflight thresholds, and
// the log file location. Values not present in the YAML file keep their defaults.
type Config struct {
	// LogFile is the append-only provisioning log.
	LogFile string `yaml:"log_file"`

	// BoardFamily must appear in /proc/device-tree/model for preflight to pass.
	BoardFamily string `yaml:"board_family"`

	// PingHosts are probed for network reachability; one reachable host is enough.
	PingHosts []string `yaml:"ping_hosts"`

	// MinFreeMB is the free-disk floor on / before provisioning may start.
	MinFreeMB uint64 `yaml:"min_free_mb"`

	Packages Packages `yaml:"packages"`
}

// Packages holds the per-group package lists.
type Packages struct {
	Essentials   []string `yaml:"essentials"`
	Monitoring   []string `yaml:"monitoring"`
	NetworkTools []string `yaml:"network_tools"`
	Database     []string `yaml:"database"`
	GPS          []string `yaml:"gps"`
}

// Default returns the built-in configuration. The tool is usable with no config
// file at all; a YAML file only overrides what it names.
func Default() Config {
	return Config{
		LogFile:     "/var/log/pisetup.log",
		BoardFamily: "Raspberry Pi",
		PingHosts:   []string{"8.8.8.8", "1.1.1.1"},
		MinFreeMB:   500,
		Packages: Packages{
			Essentials: []string{
				"vim", "git", "htop", "curl", "wget", "tmux",
				"build-essential", "python3-pip", "unzip", "tree",
				"ca-certificates", "rsync",
			},
			Monitoring: []string{
				"sysstat", "iotop", "vnstat", "prometheus-node-exporter",
			},
			NetworkTools: []string{
				"nmap", "tcpdump", "iperf3", "net-tools", "dnsutils", "mtr-tiny",
			},
			Database: []string{"mariadb-server"},
			GPS:      []string{"gpsd", "gpsd-clients", "pps-tools", "chrony"},
		},
	}
}

// Load reads the YAML config at path over the defaults. A missing file is not an
// error (defaults apply); a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("[DEBUG] No config file at %s, using built-in defaults\n", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded config from %s\n", path)
	return cfg, nil
}
