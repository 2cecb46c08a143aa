package cli

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{9.5, "$9.50"},
		{118.70, "$118.70"},
		{1234.56, "$1,234.56"},
		{1000000, "$1,000,000.00"},
		{-80.65, "-$80.65"},
		{-12345.67, "-$12,345.67"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(12.5); got != "+12.50%" {
		t.Errorf("FormatPercent(12.5) = %q", got)
	}
	if got := FormatPercent(-3.25); got != "-3.25%" {
		t.Errorf("FormatPercent(-3.25) = %q", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent(0) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "10-Mar-2026" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDateTime(d); got != "10-Mar-2026 14:30" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString(short) = %q", got)
	}
	if got := TruncateString("a longer description", 10); got != "a longe..." {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("abcdef", 3); got != "abc" {
		t.Errorf("TruncateString(max 3) = %q", got)
	}
}

// Property: FormatCurrency groups digits in threes and the formatted string
// parses back to the original amount at cent precision.
func TestProperty_CurrencyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("formatted value parses back to cents", prop.ForAll(
		func(cents int64) bool {
			amount := float64(cents) / 100

			formatted := FormatCurrency(amount)

			stripped := strings.ReplaceAll(formatted, ",", "")
			stripped = strings.ReplaceAll(stripped, "$", "")
			parsed, err := strconv.ParseFloat(stripped, 64)
			if err != nil {
				t.Logf("Failed to parse %q: %v", formatted, err)
				return false
			}
			return int64(parsed*100+0.5*sign(parsed)) == cents
		},
		gen.Int64Range(-1_000_000_000, 1_000_000_000),
	))

	properties.Property("groups between commas are three digits", prop.ForAll(
		func(cents int64) bool {
			amount := float64(cents) / 100
			formatted := strings.TrimPrefix(FormatCurrency(amount), "-")
			formatted = strings.TrimPrefix(formatted, "$")
			intPart := strings.Split(formatted, ".")[0]

			groups := strings.Split(intPart, ",")
			if len(groups[0]) < 1 || len(groups[0]) > 3 {
				return false
			}
			for _, g := range groups[1:] {
				if len(g) != 3 {
					t.Logf("Bad group %q in %q", g, formatted)
					return false
				}
			}
			return true
		},
		gen.Int64Range(-1_000_000_000, 1_000_000_000),
	))

	properties.TestingRun(t)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
