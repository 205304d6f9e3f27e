package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"pisetup/internal/config"
	"pisetup/internal/logfile"
	"pisetup/internal/logger"
	"pisetup/internal/menu"
	"pisetup/internal/preflight"
	"pisetup/internal/provision"
	"pisetup/internal/runner"
)

// provisionCmd with no arguments opens the interactive menu and runs selected
// groups until the user exits. Subcommands run one group (or all) directly.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Provision the board (interactive menu)",
	Run: func(cmd *cobra.Command, args []string) {
		runInteractive()
	},
}

// provisionAllCmd runs every group in canonical order without prompting.
var provisionAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every provisioning group in order",
	Run: func(cmd *cobra.Command, args []string) {
		withOrchestrator(func(orch *provision.Orchestrator) {
			orch.Run(provision.SelectAll())
		})
	},
}

// groupCommand builds the subcommand running exactly one group.
func groupCommand(id provision.GroupID) *cobra.Command {
	return &cobra.Command{
		Use:   string(id),
		Short: "Run only the " + string(id) + " group",
		Run: func(cmd *cobra.Command, args []string) {
			withOrchestrator(func(orch *provision.Orchestrator) {
				orch.Run(provision.SelectOne(id))
			})
		},
	}
}

// runInteractive loops the menu: preflight once, then one selection per pass
// until the user exits. Failures inside a group never end the loop; only a
// precondition failure does.
func runInteractive() {
	withOrchestrator(func(orch *provision.Orchestrator) {
		m := menu.New(os.Stdin, os.Stdout)
		for {
			sel, ok := m.Read()
			if !ok {
				logger.Info("[INFO] Bye.\n")
				return
			}
			orch.Run(sel)
		}
	})
}

// withOrchestrator loads config, opens the journal, verifies preconditions and
// hands a wired Orchestrator to fn. Precondition failures exit with status 1.
func withOrchestrator(fn func(*provision.Orchestrator)) {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
	if logFilePath != "" {
		cfg.LogFile = logFilePath
	}

	journal := logfile.Open(cfg.LogFile)
	defer journal.Close()

	exec := runner.SystemExecutor{}
	if err := preflight.New(cfg, exec, os.Stdin).Verify(); err != nil {
		var pre *preflight.Error
		if errors.As(err, &pre) {
			logger.Error("[ERROR] Precondition failed: %s\n", pre.Reason)
		} else {
			logger.Error("[ERROR] %v\n", err)
		}
		journal.Error("precondition failed: %v", err)
		os.Exit(1)
	}

	run := runner.New(exec, journal)
	journal.Info("provisioning session started")
	fn(provision.NewOrchestrator(provision.NewCatalog(cfg, run)))
	journal.Info("provisioning session finished")
}

// init registers the provision command tree: `pisetup provision`,
// `pisetup provision all`, and one subcommand per group.
func init() {
	provisionCmd.AddCommand(provisionAllCmd)
	for _, id := range provision.CanonicalOrder {
		provisionCmd.AddCommand(groupCommand(id))
	}
	rootCmd.AddCommand(provisionCmd)
}
