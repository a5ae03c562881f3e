package cli

import (
	"math"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in       float64
		currency string
		want     string
	}{
		{1500, "INR", "1,500.00 INR"},
		{1234567.891, "", "1,234,567.89"},
		{-2.5, "USD", "-2.50 USD"},
		{-0.001, "", "0.00"},
		{math.NaN(), "INR", "n/a"},
		{math.Inf(1), "INR", "n/a"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in, c.currency); got != c.want {
			t.Fatalf("FormatMoney(%v, %q) = %q, want %q", c.in, c.currency, got, c.want)
		}
	}
}

func TestFormatUnitCost_KeepsSubUnitPrecision(t *testing.T) {
	if got := FormatUnitCost(0.02, "INR"); got != "0.0200 INR" {
		t.Fatalf("FormatUnitCost(0.02) = %q", got)
	}
	if got := FormatUnitCost(17.7236, ""); got != "17.72" {
		t.Fatalf("FormatUnitCost(17.7236) = %q", got)
	}
}

func TestFormatPercentAndQuantity(t *testing.T) {
	if got := FormatPercent(18); got != "18%" {
		t.Fatalf("FormatPercent(18) = %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Fatalf("FormatPercent(12.5) = %q", got)
	}
	if got := FormatQuantity(0.2); got != "0.2" {
		t.Fatalf("FormatQuantity(0.2) = %q", got)
	}
	if got := FormatQuantity(1500); got != "1,500" {
		t.Fatalf("FormatQuantity(1500) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}
