package transaction

import "errors"

// Service errors
var (
	ErrEvaluationFailed = errors.New("rule evaluation failed")
	ErrPersistFailed    = errors.New("failed to persist transaction")
)
