// Package numerator provides code allocation for catalog entries.
//
// Spare-part codes follow the PREFIX-NNN pattern. Unlike sequence-based
// document numbering, catalog codes are reallocated: deleting an item frees
// its number for the next created item, so the allocator fills the smallest
// gap in the existing sequence instead of always taking max+1.
package numerator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Config holds code allocation configuration.
type Config struct {
	// Prefix added to all codes (e.g. "KP")
	Prefix string

	// PadWidth is the minimum number width (default 3)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 3,
	}
}

// Format renders a code for the given sequence number.
func (c Config) Format(n int) string {
	pad := c.PadWidth
	if pad <= 0 {
		pad = 3
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, pad, n)
}

// NextCode allocates the next free code given the codes currently in use.
// It returns the smallest missing positive number in the sequence, or
// max+1 when there is no gap. Codes that do not parse as PREFIX-NNN are
// ignored.
func NextCode(cfg Config, existing []string) string {
	numbers := make([]int, 0, len(existing))
	seen := make(map[int]bool, len(existing))

	for _, code := range existing {
		n, ok := parseSuffix(code)
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for i := 1; i <= len(numbers); i++ {
		if !seen[i] {
			return cfg.Format(i)
		}
	}

	last := 0
	if len(numbers) > 0 {
		last = numbers[len(numbers)-1]
	}
	return cfg.Format(last + 1)
}

// parseSuffix extracts the numeric suffix of a PREFIX-NNN code.
func parseSuffix(code string) (int, bool) {
	idx := strings.LastIndex(code, "-")
	if idx < 0 || idx == len(code)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(code[idx+1:])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
