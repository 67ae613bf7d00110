package rules

import "errors"

// ErrHistoryUnavailable wraps historical store failures. Evaluation fails
// closed on it: a transaction is never ingested with fraud checks skipped.
var ErrHistoryUnavailable = errors.New("transaction history unavailable")
