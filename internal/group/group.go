package group

import (
	"pisetup/internal/logfile"
	"pisetup/internal/logger"
)

// Operation is one external, side-effecting action with a human-readable
// description. Action returns nil on success; any error counts as "did not
// succeed" for tallying, whatever its kind.
type Operation struct {
	Description string
	Action      func() error
}

// Status is the aggregate outcome of a Group execution.
type Status string

const (
	AllSucceeded Status = "all_succeeded"
	Partial      Status = "partial"
	AllFailed    Status = "all_failed"
)

// Outcome summarizes one Group execution. It is derived data: computed once after
// the last operation runs, never stored across runs.
type Outcome struct {
	Group      string
	Succeeded  int
	Expected   int
	MinSuccess int
}

// Status compares the success tally against the expected count. An empty group
// (0 of 0) counts as all succeeded.
func (o Outcome) Status() Status {
	switch {
	case o.Succeeded == o.Expected:
		return AllSucceeded
	case o.Succeeded == 0:
		return AllFailed
	default:
		return Partial
	}
}

// Qualified reports whether the outcome meets the group's own bar. Groups with a
// MinSuccess threshold accept a partial result at or above it; all other groups
// require every operation to succeed.
func (o Outcome) Qualified() bool {
	if o.MinSuccess > 0 {
		return o.Succeeded >= o.MinSuccess
	}
	return o.Status() == AllSucceeded
}

// Group is a named, ordered bundle of operations executed together. Operations
// run strictly in declaration order and a failure never stops the ones after it;
// the group's cost is always the sum of all its operations.
type Group struct {
	Name       string
	Operations []Operation

	// MinSuccess, when nonzero, is the success count at which a partial result
	// still qualifies as an acceptable outcome for this group.
	MinSuccess int

	Journal *logfile.Journal
}

// Execute runs every operation in order, tallies successes, and emits one
// aggregate summary line for the group. Per-operation reporting is left to the
// operations themselves (the runner already prints and journals each one).
func (g *Group) Execute() Outcome {
	logger.Info("\n[INFO] === %s ===\n", g.Name)
	g.Journal.Info("group %s started (%d operations)", g.Name, len(g.Operations))

	succeeded := 0
	for _, op := range g.Operations {
		if err := op.Action(); err != nil {
			g.Journal.Warn("group %s: %s did not succeed: %v", g.Name, op.Description, err)
			continue
		}
		succeeded++
	}

	out := Outcome{
		Group:      g.Name,
		Succeeded:  succeeded,
		Expected:   len(g.Operations),
		MinSuccess: g.MinSuccess,
	}
	g.report(out)
	return out
}

// report emits the group summary to console and journal, colored by status.
func (g *Group) report(out Outcome) {
	switch out.Status() {
	case AllSucceeded:
		logger.Success("[OK] %s: all %d operations succeeded\n", g.Name, out.Expected)
		g.Journal.Info("group %s finished: %d/%d succeeded", g.Name, out.Succeeded, out.Expected)
	case Partial:
		if out.Qualified() {
			logger.Success("[OK] %s: %d/%d operations succeeded (enough to proceed)\n", g.Name, out.Succeeded, out.Expected)
			g.Journal.Info("group %s finished: %d/%d succeeded (threshold %d met)", g.Name, out.Succeeded, out.Expected, out.MinSuccess)
		} else {
			logger.Warn("[WARN] %s: only %d/%d operations succeeded\n", g.Name, out.Succeeded, out.Expected)
			g.Journal.Warn("group %s finished: %d/%d succeeded", g.Name, out.Succeeded, out.Expected)
		}
	case AllFailed:
		logger.Error("[ERROR] %s: all %d operations failed\n", g.Name, out.Expected)
		g.Journal.Error("group %s finished: 0/%d succeeded", g.Name, out.Expected)
	}
}
