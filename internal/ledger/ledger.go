// Package ledger keeps a project's remaining budget and a resource's
// available quantity consistent with the set of live assignments. Every
// operation is a pure function over snapshots: callers apply the returned
// values inside the same storage transaction that writes the assignment row.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientResource = errors.New("not enough available resource quantity")
	ErrInsufficientBudget   = errors.New("insufficient remaining budget")
	ErrBudgetBelowUsed      = errors.New("new budget is lower than amount already used")
)

// ResourceSnapshot is the quantity state of a resource at transaction read
// time. Invariant: 0 <= Available <= Total.
type ResourceSnapshot struct {
	Total     decimal.Decimal
	Available decimal.Decimal
}

// BudgetSnapshot is the budget state of a project at transaction read time.
// Invariant: 0 <= Remaining <= Total.
type BudgetSnapshot struct {
	Total     decimal.Decimal
	Remaining decimal.Decimal
}

// Reserve withholds quantity from the resource and cost from the budget as
// one atomic decision: if either side would go negative the whole
// reservation is rejected and neither returned value is meaningful.
func Reserve(res ResourceSnapshot, quantity decimal.Decimal, budget BudgetSnapshot, cost decimal.Decimal) (newAvailable, newRemaining decimal.Decimal, err error) {
	newAvailable = res.Available.Sub(quantity)
	newRemaining = budget.Remaining.Sub(cost)

	if newAvailable.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInsufficientResource
	}
	if newRemaining.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInsufficientBudget
	}

	return newAvailable, newRemaining, nil
}

// Release reverses a prior reservation. It cannot fail; the results are
// capped at the resource total and the budget total so a stray double
// release can never push either field past its ceiling.
func Release(res ResourceSnapshot, quantity decimal.Decimal, budget BudgetSnapshot, cost decimal.Decimal) (newAvailable, newRemaining decimal.Decimal) {
	newAvailable = res.Available.Add(quantity)
	if newAvailable.GreaterThan(res.Total) {
		newAvailable = res.Total
	}

	newRemaining = budget.Remaining.Add(cost)
	if newRemaining.GreaterThan(budget.Total) {
		newRemaining = budget.Total
	}

	return newAvailable, newRemaining
}

// Adjust applies an in-place edit of an existing assignment as one signed
// net change. Evaluating the deltas together avoids the spurious rejection
// that release-then-reserve would hit at the midpoint when, say, quantity
// shrinks while cost grows.
func Adjust(res ResourceSnapshot, quantityDelta decimal.Decimal, budget BudgetSnapshot, costDelta decimal.Decimal) (newAvailable, newRemaining decimal.Decimal, err error) {
	newAvailable = res.Available.Sub(quantityDelta)
	if newAvailable.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInsufficientResource
	}
	if newAvailable.GreaterThan(res.Total) {
		newAvailable = res.Total
	}

	newRemaining = budget.Remaining.Sub(costDelta)
	if newRemaining.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, ErrInsufficientBudget
	}
	if newRemaining.GreaterThan(budget.Total) {
		newRemaining = budget.Total
	}

	return newAvailable, newRemaining, nil
}

// AdjustTotalBudget recomputes the remaining budget for a new total,
// preserving the amount already used. Rejected when the new total does not
// cover what live assignments have already consumed.
func AdjustTotalBudget(budget BudgetSnapshot, newTotal decimal.Decimal) (newRemaining decimal.Decimal, err error) {
	used := budget.Total.Sub(budget.Remaining)

	newRemaining = newTotal.Sub(used)
	if newRemaining.IsNegative() {
		return decimal.Decimal{}, ErrBudgetBelowUsed
	}

	return newRemaining, nil
}
