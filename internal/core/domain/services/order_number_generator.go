package services

import (
	"context"
	"fmt"

	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

// OrderNumberGenerator allocates globally unique, human-readable order
// numbers of the form prefix + zero-padded sequence value.
//
// Uniqueness is structural, not probabilistic: every call draws the next
// value from an atomically incrementing persisted sequence, so two concurrent
// calls can never observe the same number even across processes.
//
// Overflow policy: when the sequence value no longer fits the configured
// digit width, Next fails with a CapacityExceededError. The generator never
// widens the output, because consumers may rely on the documented
// fixed-width format.
//
// Example:
//
//	generator, err := NewOrderNumberGenerator("ORD", 8, sequences)
//	if err != nil {
//	    return err
//	}
//	number, err := generator.Next(ctx) // "ORD00000001"
type OrderNumberGenerator struct {
	prefix    string
	length    int
	maxValue  int64
	sequences ports.SequenceRepository
}

// NewOrderNumberGenerator creates a generator producing numbers of the form
// prefix + zero-padded sequence with the given digit width.
//
// Parameters:
//   - prefix: literal string prepended to every number (may be empty)
//   - length: digit width of the numeric part, between 1 and 18
//   - sequences: persisted sequence the numeric part is drawn from
func NewOrderNumberGenerator(prefix string, length int, sequences ports.SequenceRepository) (*OrderNumberGenerator, error) {
	if length < 1 || length > 18 {
		return nil, errs.NewValueIsOutOfRangeError("length", length, 1, 18)
	}
	if sequences == nil {
		return nil, errs.NewValueIsRequiredError("sequences")
	}

	maxValue := int64(1)
	for i := 0; i < length; i++ {
		maxValue *= 10
	}
	maxValue--

	return &OrderNumberGenerator{
		prefix:    prefix,
		length:    length,
		maxValue:  maxValue,
		sequences: sequences,
	}, nil
}

// Next draws the next sequence value and formats it as an order number.
// Safe for concurrent use; serialization happens at the sequence store.
//
// Returns a CapacityExceededError once the sequence outgrows the configured
// width. The consumed sequence value is not reused.
func (g *OrderNumberGenerator) Next(ctx context.Context) (string, error) {
	value, err := g.sequences.Next(ctx, ports.OrderNumberSequence)
	if err != nil {
		return "", err
	}

	if value > g.maxValue {
		return "", errs.NewCapacityExceededError("order number sequence", value, g.maxValue)
	}

	return fmt.Sprintf("%s%0*d", g.prefix, g.length, value), nil
}
