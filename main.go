package main

import (
	"pisetup/cmd" // command tree and flag wiring live here
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// pisetup is a provisioning tool for Raspberry Pi class boards that:
//   - Runs preflight checks (board model, privilege helper, network reachability,
//     free disk space) before touching the system and refuses to start on mismatch
//   - Provisions the machine in named operation groups (update, essentials,
//     configuration, monitoring, network-tools, database, gps) by shelling out to
//     apt, raspi-config and systemctl, one operation at a time, in declaration order
//   - Tolerates individual operation failures: a group always runs to its last
//     operation and reports an aggregate all-succeeded / partial / all-failed summary
//   - Waits for provisioned services (mariadb, gpsd) to report active with a
//     bounded poll before calling the group done
//   - Appends every command outcome to a log file for later diagnosis while keeping
//     console output short and colored
//
// Error handling strategy:
//   - Precondition failures (wrong board, missing sudo, user declining to continue
//     without network or disk headroom) are fatal and exit nonzero
//   - Everything else is downgraded to "this operation did not succeed" at the
//     group boundary so the rest of the requested work still runs
func main() {
	cmd.Execute()
}
