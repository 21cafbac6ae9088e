package optimizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/azure-optimizer/model"
)

type stubRule struct {
	name   string
	result Result
	err    error
}

func (r stubRule) Name() string { return r.name }

func (r stubRule) Evaluate(ctx context.Context) (Result, error) { return r.result, r.err }

func TestEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("results from all rules are merged", func(t *testing.T) {
		engine := NewEngine(2)
		engine.Register(
			stubRule{name: "idle", result: Result{IdleVMs: []model.IdleVM{{ResourceID: "/x/vm-1"}}}},
			stubRule{name: "disks", result: Result{OrphanedDisks: []model.OrphanedDisk{{DiskName: "d-1"}}, SkippedRecords: 2}},
			stubRule{name: "anomalies", result: Result{CostAnomalies: []model.CostAnomaly{{Date: "2026-08-02"}}}},
		)

		result, err := engine.Run(ctx)
		require.NoError(t, err)
		assert.Len(t, result.IdleVMs, 1)
		assert.Len(t, result.OrphanedDisks, 1)
		assert.Len(t, result.CostAnomalies, 1)
		assert.Equal(t, 2, result.SkippedRecords)
	})

	t.Run("permission failures degrade to annotations", func(t *testing.T) {
		engine := NewEngine(2)
		engine.Register(
			stubRule{name: "idle", result: Result{IdleVMs: []model.IdleVM{{ResourceID: "/x/vm-1"}}}},
			stubRule{name: "disks", err: &model.PermissionError{Op: "list disks", Err: errors.New("403")}},
		)

		result, err := engine.Run(ctx)
		require.NoError(t, err)
		assert.Len(t, result.IdleVMs, 1, "other rules still contribute")
		require.Len(t, result.Annotations, 1)
		assert.Contains(t, result.Annotations[0], "disks skipped")
	})

	t.Run("any other failure aborts the run", func(t *testing.T) {
		engine := NewEngine(2)
		engine.Register(
			stubRule{name: "idle", result: Result{IdleVMs: []model.IdleVM{{ResourceID: "/x/vm-1"}}}},
			stubRule{name: "anomalies", err: errors.New("query exploded")},
		)

		_, err := engine.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "anomalies failed")
	})

	t.Run("no rules is a valid empty run", func(t *testing.T) {
		result, err := NewEngine(0).Run(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.IdleVMs)
		assert.Empty(t, result.Annotations)
	})

	t.Run("worker bound below one falls back to the default", func(t *testing.T) {
		engine := NewEngine(-3)
		rules := make([]Rule, 10)
		for i := range rules {
			rules[i] = stubRule{name: "r", result: Result{SkippedRecords: 1}}
		}
		engine.Register(rules...)

		result, err := engine.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, result.SkippedRecords)
	})
}
