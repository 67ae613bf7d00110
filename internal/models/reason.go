package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// SuspiciousReason identifies the rule that flagged a transaction.
type SuspiciousReason string

const (
	ReasonHighVolumeTransaction     SuspiciousReason = "HIGH_VOLUME_TRANSACTION"
	ReasonFrequentSmallTransactions SuspiciousReason = "FREQUENT_SMALL_TRANSACTIONS"
	ReasonRapidTransfers            SuspiciousReason = "RAPID_TRANSFERS"
)

// ReasonList is an ordered list of fired rule reasons, stored as jsonb.
// An empty list always serializes as [], never null, so that
// is_suspicious == (len(suspicious_reasons) > 0) survives round trips.
type ReasonList []SuspiciousReason

// Value implements the driver.Valuer interface
func (r ReasonList) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal(ReasonList{})
	}
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface
func (r *ReasonList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, r)
}

// MarshalJSON returns the JSON encoding
func (r ReasonList) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]SuspiciousReason(r))
}

// UnmarshalJSON sets the JSON encoding
func (r *ReasonList) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("nil pointer")
	}
	return json.Unmarshal(data, (*[]SuspiciousReason)(r))
}
