package numerator

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNextCode(t *testing.T) {
	cfg := DefaultConfig("KP")

	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "empty catalog", existing: nil, want: "KP-001"},
		{name: "no gap", existing: []string{"KP-001", "KP-002"}, want: "KP-003"},
		{name: "fills smallest gap", existing: []string{"KP-001", "KP-003"}, want: "KP-002"},
		{name: "gap at start", existing: []string{"KP-002", "KP-003"}, want: "KP-001"},
		{name: "multiple gaps take smallest", existing: []string{"KP-001", "KP-004", "KP-007"}, want: "KP-002"},
		{name: "unordered input", existing: []string{"KP-003", "KP-001", "KP-002"}, want: "KP-004"},
		{name: "duplicates ignored", existing: []string{"KP-001", "KP-001", "KP-002"}, want: "KP-003"},
		{name: "malformed codes ignored", existing: []string{"KP-001", "legacy", "KP-", "KP-abc"}, want: "KP-002"},
		{name: "grows past pad width", existing: func() []string {
			codes := make([]string, 0, 999)
			for i := 1; i <= 999; i++ {
				codes = append(codes, cfg.Format(i))
			}
			return codes
		}(), want: "KP-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextCode(cfg, tt.existing); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConfigFormat(t *testing.T) {
	cfg := DefaultConfig("KP")
	if got := cfg.Format(7); got != "KP-007" {
		t.Errorf("want KP-007, got %s", got)
	}
	if got := cfg.Format(1234); got != "KP-1234" {
		t.Errorf("want KP-1234, got %s", got)
	}

	// Zero pad width falls back to the default.
	bare := Config{Prefix: "X"}
	if got := bare.Format(5); got != "X-005" {
		t.Errorf("want X-005, got %s", got)
	}
}

// fakeSequencer counts per key in memory.
type fakeSequencer struct {
	counters map[string]int64
	err      error
}

func (f *fakeSequencer) Next(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[key]++
	return f.counters[key], nil
}

func TestNextNumber(t *testing.T) {
	seq := &fakeSequencer{}
	ctx := context.Background()
	date := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

	first, err := NextNumber(ctx, seq, "SRV", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "SRV-2026-00001" {
		t.Errorf("want SRV-2026-00001, got %s", first)
	}

	second, err := NextNumber(ctx, seq, "SRV", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "SRV-2026-00002" {
		t.Errorf("want SRV-2026-00002, got %s", second)
	}

	// A new year restarts the sequence under its own key.
	nextYear, err := NextNumber(ctx, seq, "SRV", date.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nextYear != "SRV-2027-00001" {
		t.Errorf("want SRV-2027-00001, got %s", nextYear)
	}

	// Prefixes do not share counters.
	est, err := NextNumber(ctx, seq, "EST", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est != "EST-2026-00001" {
		t.Errorf("want EST-2026-00001, got %s", est)
	}
}

func TestNextNumber_SequencerError(t *testing.T) {
	seq := &fakeSequencer{err: errors.New("connection reset")}

	if _, err := NextNumber(context.Background(), seq, "SRV", time.Now()); err == nil {
		t.Fatal("expected error")
	}
}
