package rules

import (
	"context"
	"fmt"

	"fraudwatch/internal/models"
)

// highVolumeRule fires on any single transaction strictly above the
// threshold. Pure function of the transaction, no I/O.
type highVolumeRule struct{}

func (highVolumeRule) Reason() models.SuspiciousReason {
	return models.ReasonHighVolumeTransaction
}

func (highVolumeRule) Evaluate(_ context.Context, _ Env, tx *models.Transaction) (bool, error) {
	return tx.Amount > HighVolumeThreshold, nil
}

// frequentSmallRule fires when a user makes many small transactions inside an
// hour. Once the threshold is crossed the user is flagged for the full TTL
// from the current evaluation time, not from the first qualifying
// transaction — a known simplification that over-extends the window.
type frequentSmallRule struct{}

func (frequentSmallRule) Reason() models.SuspiciousReason {
	return models.ReasonFrequentSmallTransactions
}

func (r frequentSmallRule) Evaluate(ctx context.Context, env Env, tx *models.Transaction) (bool, error) {
	name := string(r.Reason())

	key := frequentSmallKeyPrefix + tx.UserID
	flagged, err := env.Flags.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if flagged {
		env.Metrics.RecordCacheHit(name)
		return true, nil
	}
	env.Metrics.RecordCacheMiss(name)

	// Only small transactions count toward the pattern; a large one neither
	// fires nor queries.
	if tx.Amount > FrequentSmallMaxAmount {
		return false, nil
	}

	maxAmount := FrequentSmallMaxAmount
	env.Metrics.RecordHistoryQuery(name)
	recent, err := env.History.RecentForUser(ctx, tx.UserID, FrequentSmallLookback, nil, &maxAmount)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	if len(recent) < FrequentSmallCountMax {
		return false, nil
	}

	// The flag is an advisory memo; a failed write only costs an extra query
	// on the next transaction, so it never blocks the verdict.
	_ = env.Flags.SetFlag(ctx, key, FrequentSmallFlagTTL)
	return true, nil
}

// rapidTransfersRule fires when a user makes too many transfers inside five
// minutes. The cache probe runs before the type check, so a user inside the
// cooldown is flagged even on a non-transfer transaction.
type rapidTransfersRule struct{}

func (rapidTransfersRule) Reason() models.SuspiciousReason {
	return models.ReasonRapidTransfers
}

func (r rapidTransfersRule) Evaluate(ctx context.Context, env Env, tx *models.Transaction) (bool, error) {
	name := string(r.Reason())

	key := rapidTransfersKeyPrefix + tx.UserID
	flagged, err := env.Flags.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if flagged {
		env.Metrics.RecordCacheHit(name)
		return true, nil
	}
	env.Metrics.RecordCacheMiss(name)

	if tx.Type != models.TransactionTypeTransfer {
		return false, nil
	}

	env.Metrics.RecordHistoryQuery(name)
	recent, err := env.History.RecentForUser(ctx, tx.UserID, RapidTransfersLookback,
		[]models.TransactionType{models.TransactionTypeTransfer}, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	// The current transfer plus RapidTransferCountMax prior ones goes over
	// the limit, hence >=.
	if len(recent) < RapidTransferCountMax {
		return false, nil
	}

	_ = env.Flags.SetFlag(ctx, key, RapidTransfersFlagTTL)
	return true, nil
}
