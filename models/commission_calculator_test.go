package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestCalculateCommission(t *testing.T) {
	cases := []struct {
		name      string
		mode      CommissionMode
		rate      string
		quantity  string
		unitPrice string
		expected  string
	}{
		{"percentage over amount", CommissionModePercentage, "1.5", "25000", "0.25", "93.75"},
		{"percentage rounds half up", CommissionModePercentage, "2", "333", "0.333", "2.22"},
		{"per kilogram", CommissionModePerKilogram, "0.003", "20000", "0.355", "60"},
		{"per kilogram ignores unit price", CommissionModePerKilogram, "0.01", "5000", "99", "50"},
		{"zero rate yields zero", CommissionModePercentage, "0", "25000", "0.25", "0"},
		{"negative rate yields zero", CommissionModePerKilogram, "-0.003", "20000", "0.25", "0"},
		{"unknown mode yields zero", CommissionMode("flat_fee"), "1.5", "25000", "0.25", "0"},
		{"empty mode yields zero", CommissionMode(""), "1.5", "25000", "0.25", "0"},
		{"zero quantity yields zero", CommissionModePerKilogram, "0.003", "0", "0.25", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateCommission(tc.mode, dec(t, tc.rate), dec(t, tc.quantity), dec(t, tc.unitPrice))
			if !got.Equal(dec(t, tc.expected)) {
				t.Fatalf("CalculateCommission(%s, %s, %s, %s) expected %s, got %s",
					tc.mode, tc.rate, tc.quantity, tc.unitPrice, tc.expected, got.String())
			}
		})
	}
}

func TestCalculateCommissionResultHasTwoDecimals(t *testing.T) {
	got := CalculateCommission(CommissionModePercentage, dec(t, "1.75"), dec(t, "1234"), dec(t, "0.4567"))
	// 1234 * 0.4567 * 1.75 / 100 = 9.86296...
	if got.Exponent() < -2 {
		t.Fatalf("expected at most 2 decimals, got %s", got.String())
	}
	if !got.Equal(dec(t, "9.86")) {
		t.Fatalf("expected 9.86, got %s", got.String())
	}
}
