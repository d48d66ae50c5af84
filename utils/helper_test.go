package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoalesceDecimal(t *testing.T) {
	if !CoalesceDecimal(nil).IsZero() {
		t.Fatal("nil must coalesce to zero")
	}
	d := decimal.RequireFromString("12.34")
	if !CoalesceDecimal(&d).Equal(d) {
		t.Fatal("non-nil value must pass through")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]int{3, 1, 3, 2, 1})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("expected [3 1 2] preserving first occurrence order, got %v", got)
	}
	if out := UniqueSlice([]string{}); len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" https://a.example , ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected result %v", got)
	}
	if SplitAndTrim("   ") != nil {
		t.Fatal("blank input must yield nil")
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"agente@example.com", true},
		{"a.b+c@sub.example.es", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.in); got != tc.valid {
			t.Fatalf("IsValidEmail(%q) expected %v, got %v", tc.in, tc.valid, got)
		}
	}
}

func TestDereferencePtr(t *testing.T) {
	if got := DereferencePtr(nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	v := 7
	if got := DereferencePtr(&v, 0); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
