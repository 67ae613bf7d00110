// Package rules implements the fraud rule engine: a fixed-order set of
// independent heuristics evaluated against each incoming transaction, with a
// short-TTL flag cache memoizing per-user cooldowns.
package rules

import (
	"context"
	"fmt"
	"time"

	"fraudwatch/internal/models"
)

// Engine evaluates every registered rule against a single not-yet-persisted
// transaction and returns the fired reasons in registration order. The
// transaction itself is never mutated; side effects are confined to flag
// cache writes.
type Engine struct {
	env   Env
	rules []Rule
}

// NewEngine creates an engine with the three built-in rules registered in
// evaluation order: high volume, frequent small transactions, rapid transfers.
func NewEngine(history HistoryReader, flags FlagCache, metrics MetricsCollector) *Engine {
	if history == nil {
		panic("history reader is required")
	}
	if flags == nil {
		panic("flag cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &Engine{
		env: Env{History: history, Flags: flags, Metrics: metrics},
		rules: []Rule{
			highVolumeRule{},
			frequentSmallRule{},
			rapidTransfersRule{},
		},
	}
}

// Evaluate runs every rule; there is no short-circuit on first match, so
// independent rules can all appear in the result. An empty list means not
// suspicious. A historical store failure aborts the whole evaluation.
func (e *Engine) Evaluate(ctx context.Context, tx *models.Transaction) (models.ReasonList, error) {
	start := time.Now()
	defer func() {
		e.env.Metrics.RecordEvaluationDuration(time.Since(start))
	}()

	reasons := models.ReasonList{}
	seen := make(map[models.SuspiciousReason]bool, len(e.rules))

	for _, rule := range e.rules {
		fired, err := rule.Evaluate(ctx, e.env, tx)
		if err != nil {
			e.env.Metrics.RecordError(string(rule.Reason()))
			return nil, fmt.Errorf("rule %s: %w", rule.Reason(), err)
		}
		if !fired || seen[rule.Reason()] {
			continue
		}
		seen[rule.Reason()] = true
		reasons = append(reasons, rule.Reason())
		e.env.Metrics.RecordRuleFired(string(rule.Reason()))
	}

	return reasons, nil
}
