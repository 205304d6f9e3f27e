package provision

import (
	"pisetup/internal/group"
)

// Orchestrator dispatches selected groups in canonical order. Its job ends at
// dispatch: groups report their own outcomes and no cross-group state is kept
// beyond the returned slice.
type Orchestrator struct {
	catalog *Catalog
}

// NewOrchestrator builds an Orchestrator over a catalog.
func NewOrchestrator(catalog *Catalog) *Orchestrator {
	return &Orchestrator{catalog: catalog}
}

// Run resolves the selection and executes each chosen group exactly once, in
// canonical order. A group's failures never stop the groups after it.
func (o *Orchestrator) Run(sel Selection) []group.Outcome {
	ids := sel.Resolve()
	outcomes := make([]group.Outcome, 0, len(ids))
	for _, id := range ids {
		outcomes = append(outcomes, o.catalog.Group(id).Execute())
	}
	return outcomes
}
