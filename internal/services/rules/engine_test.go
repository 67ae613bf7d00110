package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"fraudwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) RecentForUser(_ context.Context, userID string, lookback time.Duration, types []models.TransactionType, maxAmount *float64) ([]models.Transaction, error) {
	args := m.Called(userID, lookback, types, maxAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

type MockFlags struct {
	mock.Mock
}

func (m *MockFlags) Exists(_ context.Context, key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlags) SetFlag(_ context.Context, key string, ttl time.Duration) error {
	args := m.Called(key, ttl)
	return args.Error(0)
}

func makeTransactions(n int) []models.Transaction {
	txs := make([]models.Transaction, n)
	for i := range txs {
		txs[i] = models.Transaction{UserID: "user1234", Amount: 50}
	}
	return txs
}

func newTx(amount float64, txType models.TransactionType) *models.Transaction {
	return &models.Transaction{
		UserID:    "user1234",
		Amount:    amount,
		Currency:  "USD",
		Timestamp: time.Now().UTC(),
		Type:      txType,
	}
}

// noFlags returns a flag cache that misses every probe.
func noFlags() *MockFlags {
	flags := new(MockFlags)
	flags.On("Exists", mock.Anything).Return(false, nil)
	return flags
}

func TestEngine_HighVolume(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   models.ReasonList
	}{
		{name: "above threshold fires", amount: 10001, want: models.ReasonList{models.ReasonHighVolumeTransaction}},
		{name: "exactly threshold does not fire", amount: 10000, want: models.ReasonList{}},
		{name: "below threshold does not fire", amount: 9999.99, want: models.ReasonList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := new(MockHistory)
			engine := NewEngine(history, noFlags(), nil)

			reasons, err := engine.Evaluate(context.Background(), newTx(tt.amount, models.TransactionTypeDeposit))

			assert.NoError(t, err)
			assert.Equal(t, tt.want, reasons)
			// Large deposits skip both history-backed rules entirely.
			history.AssertNotCalled(t, "RecentForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEngine_CleanDeposit(t *testing.T) {
	history := new(MockHistory)
	history.On("RecentForUser", "user1234", FrequentSmallLookback, mock.Anything, mock.Anything).
		Return([]models.Transaction{}, nil)
	engine := NewEngine(history, noFlags(), nil)

	reasons, err := engine.Evaluate(context.Background(), newTx(500, models.TransactionTypeDeposit))

	assert.NoError(t, err)
	assert.False(t, len(reasons) > 0)
	assert.Equal(t, models.ReasonList{}, reasons)
	// 500 is not small, so even the frequent-small rule issues no query.
	history.AssertNotCalled(t, "RecentForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_FrequentSmallTransactions(t *testing.T) {
	tests := []struct {
		name       string
		priorSmall int
		want       models.ReasonList
		flagSet    bool
	}{
		{name: "fifth small transaction fires", priorSmall: 4, want: models.ReasonList{models.ReasonFrequentSmallTransactions}, flagSet: true},
		{name: "fourth small transaction does not fire", priorSmall: 3, want: models.ReasonList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := new(MockHistory)
			history.On("RecentForUser", "user1234", FrequentSmallLookback, mock.Anything, mock.Anything).
				Return(makeTransactions(tt.priorSmall), nil)

			flags := noFlags()
			if tt.flagSet {
				flags.On("SetFlag", frequentSmallKeyPrefix+"user1234", FrequentSmallFlagTTL).Return(nil)
			}

			engine := NewEngine(history, flags, nil)
			reasons, err := engine.Evaluate(context.Background(), newTx(50, models.TransactionTypeWithdrawal))

			assert.NoError(t, err)
			assert.Equal(t, tt.want, reasons)
			flags.AssertExpectations(t)
		})
	}
}

func TestEngine_RapidTransfers(t *testing.T) {
	tests := []struct {
		name           string
		priorTransfers int
		want           models.ReasonList
		flagSet        bool
	}{
		{name: "third transfer fires", priorTransfers: 2, want: models.ReasonList{models.ReasonRapidTransfers}, flagSet: true},
		{name: "second transfer does not fire", priorTransfers: 1, want: models.ReasonList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := new(MockHistory)
			history.On("RecentForUser", "user1234", RapidTransfersLookback,
				[]models.TransactionType{models.TransactionTypeTransfer}, mock.Anything).
				Return(makeTransactions(tt.priorTransfers), nil)

			flags := noFlags()
			if tt.flagSet {
				flags.On("SetFlag", rapidTransfersKeyPrefix+"user1234", RapidTransfersFlagTTL).Return(nil)
			}

			// 200 keeps the frequent-small rule out of the picture.
			engine := NewEngine(history, flags, nil)
			reasons, err := engine.Evaluate(context.Background(), newTx(200, models.TransactionTypeTransfer))

			assert.NoError(t, err)
			assert.Equal(t, tt.want, reasons)
			flags.AssertExpectations(t)
		})
	}
}

func TestEngine_NonTransferSkipsRapidQuery(t *testing.T) {
	history := new(MockHistory)
	engine := NewEngine(history, noFlags(), nil)

	reasons, err := engine.Evaluate(context.Background(), newTx(200, models.TransactionTypeWithdrawal))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonList{}, reasons)
	history.AssertNotCalled(t, "RecentForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_CachedFlagSkipsHistoryQuery(t *testing.T) {
	history := new(MockHistory)

	flags := new(MockFlags)
	flags.On("Exists", frequentSmallKeyPrefix+"user1234").Return(true, nil)
	flags.On("Exists", rapidTransfersKeyPrefix+"user1234").Return(false, nil)

	engine := NewEngine(history, flags, nil)
	reasons, err := engine.Evaluate(context.Background(), newTx(50, models.TransactionTypeWithdrawal))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonList{models.ReasonFrequentSmallTransactions}, reasons)
	history.AssertNotCalled(t, "RecentForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_RapidCooldownFlagsNonTransfers(t *testing.T) {
	// The rapid-transfers cache probe runs before the type check, so a user
	// inside the cooldown is flagged even on a withdrawal.
	history := new(MockHistory)

	flags := new(MockFlags)
	flags.On("Exists", frequentSmallKeyPrefix+"user1234").Return(false, nil)
	flags.On("Exists", rapidTransfersKeyPrefix+"user1234").Return(true, nil)

	engine := NewEngine(history, flags, nil)
	reasons, err := engine.Evaluate(context.Background(), newTx(500, models.TransactionTypeWithdrawal))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonList{models.ReasonRapidTransfers}, reasons)
	history.AssertNotCalled(t, "RecentForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEngine_RulesAreIndependent(t *testing.T) {
	// A 10001 transfer that is also the third rapid transfer trips both rules.
	history := new(MockHistory)
	history.On("RecentForUser", "user1234", RapidTransfersLookback,
		[]models.TransactionType{models.TransactionTypeTransfer}, mock.Anything).
		Return(makeTransactions(2), nil)

	flags := noFlags()
	flags.On("SetFlag", rapidTransfersKeyPrefix+"user1234", RapidTransfersFlagTTL).Return(nil)

	engine := NewEngine(history, flags, nil)
	reasons, err := engine.Evaluate(context.Background(), newTx(10001, models.TransactionTypeTransfer))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonList{
		models.ReasonHighVolumeTransaction,
		models.ReasonRapidTransfers,
	}, reasons)
}

func TestEngine_HistoryErrorFailsClosed(t *testing.T) {
	history := new(MockHistory)
	history.On("RecentForUser", "user1234", FrequentSmallLookback, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	engine := NewEngine(history, noFlags(), nil)
	reasons, err := engine.Evaluate(context.Background(), newTx(50, models.TransactionTypeWithdrawal))

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assert.Nil(t, reasons)
}

func TestEngine_FlagWriteFailureDoesNotBlockVerdict(t *testing.T) {
	history := new(MockHistory)
	history.On("RecentForUser", "user1234", FrequentSmallLookback, mock.Anything, mock.Anything).
		Return(makeTransactions(4), nil)

	flags := noFlags()
	flags.On("SetFlag", frequentSmallKeyPrefix+"user1234", FrequentSmallFlagTTL).
		Return(errors.New("redis down"))

	engine := NewEngine(history, flags, nil)
	reasons, err := engine.Evaluate(context.Background(), newTx(50, models.TransactionTypeWithdrawal))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonList{models.ReasonFrequentSmallTransactions}, reasons)
}

func TestEngine_EvaluateIsIdempotent(t *testing.T) {
	history := new(MockHistory)
	history.On("RecentForUser", "user1234", FrequentSmallLookback, mock.Anything, mock.Anything).
		Return(makeTransactions(1), nil)

	engine := NewEngine(history, noFlags(), nil)
	tx := newTx(50, models.TransactionTypeWithdrawal)

	first, err := engine.Evaluate(context.Background(), tx)
	assert.NoError(t, err)
	second, err := engine.Evaluate(context.Background(), tx)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
