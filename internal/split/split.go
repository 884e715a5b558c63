// Package split resolves the different ways an expense can be divided
// (equal, percentage, exact amounts, weighted shares) into a flat
// per-participant list of cent amounts. Balance math downstream only ever
// sees resolved shares and stays method-agnostic.
package split

import (
	"errors"
	"fmt"
	"math"
)

// Method identifies how an expense total is divided among participants.
type Method string

const (
	// MethodEqual divides the total evenly; leftover cents go to the first
	// participants in input order.
	MethodEqual Method = "equal"

	// MethodPercentage divides by per-participant percentages summing to 100.
	MethodPercentage Method = "percentage"

	// MethodExact uses caller-supplied cent amounts summing to the total.
	MethodExact Method = "exact"

	// MethodShares divides proportionally to integer weights.
	MethodShares Method = "shares"
)

var (
	ErrNoParticipants = errors.New("split requires at least one participant")
	ErrBadMethod      = errors.New("unknown split method")
	ErrBadPercentage  = errors.New("percentages must sum to 100")
	ErrBadExactTotal  = errors.New("exact amounts must sum to the expense total")
	ErrBadWeights     = errors.New("share weights must be positive")
)

// Input is one participant's entry for a split. Which field matters depends
// on the method: Percent for percentage splits, Amount for exact splits,
// Weight for share splits. Equal splits only use UserID.
type Input struct {
	UserID  string
	Percent float64
	Amount  int64
	Weight  int64
}

// Share is one participant's resolved share in cents.
type Share struct {
	UserID string
	Amount int64
}

// ParseMethod validates a method string from the API layer.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEqual, MethodPercentage, MethodExact, MethodShares:
		return Method(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadMethod, s)
}

// Resolve divides total cents among participants according to the method.
// The returned shares preserve input order and always sum to total exactly;
// rounding remainders are assigned one cent at a time to the earliest
// participants so the assignment is deterministic.
func Resolve(method Method, total int64, inputs []Input) ([]Share, error) {
	if len(inputs) == 0 {
		return nil, ErrNoParticipants
	}
	if total < 0 {
		return nil, fmt.Errorf("total must not be negative, got %d", total)
	}

	switch method {
	case MethodEqual:
		return resolveEqual(total, inputs), nil
	case MethodPercentage:
		return resolvePercentage(total, inputs)
	case MethodExact:
		return resolveExact(total, inputs)
	case MethodShares:
		return resolveWeighted(total, inputs)
	}
	return nil, fmt.Errorf("%w: %q", ErrBadMethod, method)
}

func resolveEqual(total int64, inputs []Input) []Share {
	n := int64(len(inputs))
	base := total / n
	remainder := total % n

	shares := make([]Share, len(inputs))
	for i, in := range inputs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares[i] = Share{UserID: in.UserID, Amount: amount}
	}
	return shares
}

func resolvePercentage(total int64, inputs []Input) ([]Share, error) {
	var sum float64
	for _, in := range inputs {
		if in.Percent < 0 {
			return nil, fmt.Errorf("%w: negative percent for %s", ErrBadPercentage, in.UserID)
		}
		sum += in.Percent
	}
	if math.Abs(sum-100) > 0.01 {
		return nil, fmt.Errorf("%w: got %.2f", ErrBadPercentage, sum)
	}

	// Round each share to the nearest cent, then reconcile the rounding
	// drift against the earliest participants so shares sum to total.
	shares := make([]Share, len(inputs))
	var assigned int64
	for i, in := range inputs {
		amount := int64(math.Round(float64(total) * in.Percent / 100))
		shares[i] = Share{UserID: in.UserID, Amount: amount}
		assigned += amount
	}
	distributeDrift(shares, total-assigned)
	return shares, nil
}

func resolveExact(total int64, inputs []Input) ([]Share, error) {
	var sum int64
	for _, in := range inputs {
		if in.Amount < 0 {
			return nil, fmt.Errorf("%w: negative amount for %s", ErrBadExactTotal, in.UserID)
		}
		sum += in.Amount
	}
	if sum != total {
		return nil, fmt.Errorf("%w: amounts sum to %d, total is %d", ErrBadExactTotal, sum, total)
	}

	shares := make([]Share, len(inputs))
	for i, in := range inputs {
		shares[i] = Share{UserID: in.UserID, Amount: in.Amount}
	}
	return shares, nil
}

func resolveWeighted(total int64, inputs []Input) ([]Share, error) {
	var totalWeight int64
	for _, in := range inputs {
		if in.Weight <= 0 {
			return nil, fmt.Errorf("%w: weight %d for %s", ErrBadWeights, in.Weight, in.UserID)
		}
		totalWeight += in.Weight
	}

	shares := make([]Share, len(inputs))
	var assigned int64
	for i, in := range inputs {
		amount := total * in.Weight / totalWeight
		shares[i] = Share{UserID: in.UserID, Amount: amount}
		assigned += amount
	}
	distributeDrift(shares, total-assigned)
	return shares, nil
}

// distributeDrift spreads leftover cents (positive or negative) one cent at
// a time across the earliest shares. |drift| is always < len(shares) for
// weighted splits and tiny for percentage splits, so a single pass suffices.
func distributeDrift(shares []Share, drift int64) {
	step := int64(1)
	if drift < 0 {
		step = -1
	}
	for i := 0; drift != 0; i = (i + 1) % len(shares) {
		shares[i].Amount += step
		drift -= step
	}
}
