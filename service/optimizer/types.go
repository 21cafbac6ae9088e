package optimizer

import (
	"context"

	"github.com/elC0mpa/azure-optimizer/model"
)

// Rule is one optimization heuristic. Rules query the platform services
// they were constructed with, apply thresholds from the run configuration,
// and return typed recommendations. Absence of input data is not a fault:
// rules return an empty Result for it.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context) (Result, error)
}

// Result carries one rule's recommendations. Each rule fills exactly one
// of the four slices; the engine merges results across rules.
type Result struct {
	IdleVMs       []model.IdleVM       `json:"idleVMs,omitempty"`
	SKUResizes    []model.SKUResize    `json:"skuResizes,omitempty"`
	OrphanedDisks []model.OrphanedDisk `json:"orphanedDisks,omitempty"`
	CostAnomalies []model.CostAnomaly  `json:"costAnomalies,omitempty"`

	// SkippedRecords counts malformed input records a rule dropped.
	SkippedRecords int `json:"skippedRecords,omitempty"`

	// Annotations note degraded evaluations, e.g. a rule skipped for
	// missing permissions.
	Annotations []string `json:"annotations,omitempty"`
}

func (r *Result) merge(other Result) {
	r.IdleVMs = append(r.IdleVMs, other.IdleVMs...)
	r.SKUResizes = append(r.SKUResizes, other.SKUResizes...)
	r.OrphanedDisks = append(r.OrphanedDisks, other.OrphanedDisks...)
	r.CostAnomalies = append(r.CostAnomalies, other.CostAnomalies...)
	r.SkippedRecords += other.SkippedRecords
	r.Annotations = append(r.Annotations, other.Annotations...)
}
