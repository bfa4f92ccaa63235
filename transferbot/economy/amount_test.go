package economy

import (
	"strconv"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-5", -5, true},
		{"5k", 5_000, true},
		{"5K", 5_000, true},
		{"1.5m", 1_500_000, true},
		{"2b", 2_000_000_000, true},
		{" 10k ", 10_000, true},
		{"5e3", 5_000, true},
		{"1.5e2", 150, true},
		{"1.5", 0, false},
		{"1.2345k", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"k", 0, false},
		{"5kk", 0, false},
		{"20000000000b", 0, false},
		{"-20000000000b", 0, false},
		{"9223372036854775807", 9_223_372_036_854_775_807, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1K"},
		{1_234, "1.2K"},
		{50_000, "50K"},
		{1_000_000, "1M"},
		{1_500_000, "1.5M"},
		{2_000_000_000, "2B"},
		{-1_500, "-1.5K"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatAmount(tt.in); got != tt.want {
				t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Values below the first suffix threshold survive a round trip intact.
func TestFormatAmountRoundTripBelowThousand(t *testing.T) {
	for _, n := range []int64{0, 1, 37, 500, 999} {
		formatted := FormatAmount(n)
		parsed, err := strconv.ParseInt(formatted, 10, 64)
		if err != nil {
			t.Fatalf("FormatAmount(%d) = %q is not a bare integer: %v", n, formatted, err)
		}
		if parsed != n {
			t.Errorf("round trip of %d gave %d", n, parsed)
		}
	}
}
