package rules

import (
	"context"
	"time"

	"fraudwatch/internal/models"
)

// HistoryReader is the engine's read-only view of the transaction store.
type HistoryReader interface {
	RecentForUser(ctx context.Context, userID string, lookback time.Duration, types []models.TransactionType, maxAmount *float64) ([]models.Transaction, error)
}

// FlagCache memoizes per-user rule cooldowns so repeated evaluations inside a
// rule's window skip the historical query. Implementations decide how cache
// failures surface; the wired implementation degrades to always-query.
type FlagCache interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, ttl time.Duration) error
}

// Env is the read-only environment handed to every rule: the transaction
// under evaluation never changes, and all cross-transaction memory lives
// behind these two handles.
type Env struct {
	History HistoryReader
	Flags   FlagCache
	Metrics MetricsCollector
}

// Rule is a named, independently evaluable predicate over a transaction and
// recent history. Rules hold no state of their own.
type Rule interface {
	Reason() models.SuspiciousReason
	Evaluate(ctx context.Context, env Env, tx *models.Transaction) (bool, error)
}
