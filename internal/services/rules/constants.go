package rules

import "time"

// Rule thresholds
const (
	// HighVolumeThreshold flags any amount strictly above it, in the
	// transaction's declared currency. No conversion.
	HighVolumeThreshold = 10000.0

	// FrequentSmallMaxAmount is the inclusive ceiling for a "small" transaction.
	FrequentSmallMaxAmount = 100.00
	// FrequentSmallCountMax fires the rule once this many prior small
	// transactions exist inside the lookback window.
	FrequentSmallCountMax = 4
	FrequentSmallLookback = time.Hour
	FrequentSmallFlagTTL  = time.Hour

	// RapidTransferCountMax prior transfers inside the window plus the current
	// one exceeds the limit, so the comparison is >=.
	RapidTransferCountMax  = 2
	RapidTransfersLookback = 5 * time.Minute
	RapidTransfersFlagTTL  = 5 * time.Minute
)

// Flag cache key prefixes, one disjoint key space per rule.
const (
	frequentSmallKeyPrefix  = "small_transactions:"
	rapidTransfersKeyPrefix = "rapid_transfers:"
)
