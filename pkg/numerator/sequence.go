package numerator

import (
	"context"
	"fmt"
	"time"
)

// Sequencer hands out monotonically increasing numbers per key. The
// storage layer implements it atomically so concurrent document creation
// never reuses a number.
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
}

// FormatNumber renders a document number: PREFIX-YEAR-NNNNN.
func FormatNumber(prefix string, period time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, period.Year(), seq)
}

// SequenceKey builds the per-year sequence key for a prefix, so numbering
// restarts every year.
func SequenceKey(prefix string, period time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, period.Year())
}

// NextNumber allocates and formats the next document number for a prefix.
func NextNumber(ctx context.Context, seq Sequencer, prefix string, period time.Time) (string, error) {
	n, err := seq.Next(ctx, SequenceKey(prefix, period))
	if err != nil {
		return "", fmt.Errorf("next sequence for %s: %w", prefix, err)
	}
	return FormatNumber(prefix, period, n), nil
}
