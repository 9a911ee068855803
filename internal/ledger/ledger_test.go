package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestReserve(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(10)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(1000)}

	available, remaining, err := Reserve(res, d(4), budget, d(300))
	require.NoError(t, err)
	assert.True(t, available.Equal(d(6)))
	assert.True(t, remaining.Equal(d(700)))
}

func TestReserveRejectsOverQuantity(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(6)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(700)}

	_, _, err := Reserve(res, d(8), budget, d(100))
	assert.ErrorIs(t, err, ErrInsufficientResource)
}

func TestReserveRejectsOverBudget(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(10)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(200)}

	_, _, err := Reserve(res, d(1), budget, d(201))
	assert.ErrorIs(t, err, ErrInsufficientBudget)
}

func TestReserveExactlyExhausts(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(4)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(300)}

	available, remaining, err := Reserve(res, d(4), budget, d(300))
	require.NoError(t, err)
	assert.True(t, available.IsZero())
	assert.True(t, remaining.IsZero())
}

func TestReleaseRoundTrip(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(10)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(1000)}

	available, remaining, err := Reserve(res, d(4), budget, d(300))
	require.NoError(t, err)

	available, remaining = Release(
		ResourceSnapshot{Total: res.Total, Available: available}, d(4),
		BudgetSnapshot{Total: budget.Total, Remaining: remaining}, d(300),
	)

	assert.True(t, available.Equal(res.Total))
	assert.True(t, remaining.Equal(budget.Total))
}

func TestReleaseCapsAtTotals(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(9)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(950)}

	available, remaining := Release(res, d(5), budget, d(100))
	assert.True(t, available.Equal(d(10)))
	assert.True(t, remaining.Equal(d(1000)))
}

func TestAdjustNetDelta(t *testing.T) {
	// Assignment of 4 units at cost 300, edited to 2 units at cost 500.
	res := ResourceSnapshot{Total: d(10), Available: d(6)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(700)}

	available, remaining, err := Adjust(res, d(2).Sub(d(4)), budget, d(500).Sub(d(300)))
	require.NoError(t, err)
	assert.True(t, available.Equal(d(8)))
	assert.True(t, remaining.Equal(d(500)))
}

func TestAdjustAvoidsMidpointRejection(t *testing.T) {
	// Quantity shrinks while cost grows: evaluated as one net change, so the
	// budget only needs to cover the delta, not the full new cost.
	res := ResourceSnapshot{Total: d(10), Available: d(0)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(50)}

	available, remaining, err := Adjust(res, d(3).Sub(d(10)), budget, d(40))
	require.NoError(t, err)
	assert.True(t, available.Equal(d(7)))
	assert.True(t, remaining.Equal(d(10)))
}

func TestAdjustRejectsOverdraw(t *testing.T) {
	res := ResourceSnapshot{Total: d(10), Available: d(2)}
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(700)}

	_, _, err := Adjust(res, d(3), budget, d(0))
	assert.ErrorIs(t, err, ErrInsufficientResource)

	_, _, err = Adjust(res, d(1), budget, d(701))
	assert.ErrorIs(t, err, ErrInsufficientBudget)
}

func TestAdjustTotalBudget(t *testing.T) {
	// 300 already used out of 1000.
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(700)}

	remaining, err := AdjustTotalBudget(budget, d(500))
	require.NoError(t, err)
	assert.True(t, remaining.Equal(d(200)))

	remaining, err = AdjustTotalBudget(budget, d(300))
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
}

func TestAdjustTotalBudgetRejectsBelowUsed(t *testing.T) {
	budget := BudgetSnapshot{Total: d(1000), Remaining: d(700)}

	_, err := AdjustTotalBudget(budget, d(200))
	assert.ErrorIs(t, err, ErrBudgetBelowUsed)
}
