package optimizer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/elC0mpa/azure-optimizer/model"
)

// DefaultWorkers bounds rule parallelism. Provider rate limits, not CPU,
// are the constraint, so the pool stays small.
const DefaultWorkers = 2

// Engine evaluates registered rules on a bounded worker pool and merges
// their results. A rule failing with a PermissionError degrades to an
// empty annotated result; any other failure aborts the run.
type Engine struct {
	rules   []Rule
	workers int
}

func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{workers: workers}
}

func (e *Engine) Register(rules ...Rule) {
	e.rules = append(e.rules, rules...)
}

// Run evaluates all rules and joins before returning, so the caller always
// sees the complete merged result of every rule that ran.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	type outcome struct {
		name   string
		result Result
		err    error
	}

	sem := make(chan struct{}, e.workers)
	outcomes := make([]outcome, len(e.rules))

	var wg sync.WaitGroup
	for i, rule := range e.rules {
		wg.Add(1)
		go func(i int, rule Rule) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := rule.Evaluate(ctx)
			outcomes[i] = outcome{name: rule.Name(), result: result, err: err}
		}(i, rule)
	}
	wg.Wait()

	var merged Result
	var fatal error
	for _, o := range outcomes {
		switch {
		case o.err == nil:
			merged.merge(o.result)
		case model.IsPermission(o.err):
			merged.Annotations = append(merged.Annotations,
				fmt.Sprintf("%s skipped: %v", o.name, o.err))
		case fatal == nil:
			fatal = fmt.Errorf("%s failed: %w", o.name, o.err)
		}
	}
	if fatal != nil {
		return Result{}, fatal
	}

	sort.Strings(merged.Annotations)
	return merged, nil
}
