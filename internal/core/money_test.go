package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"-12.34", "-12.34", true},
		{"1.005", "1.01", true},
		{"-1.005", "-1.01", true},
		{" 2.50 ", "2.5", true},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"4.5":        "$4.50",
		"-4.5":       "-$4.50",
		"999.999":    "$1,000.00",
		"1234.56":    "$1,234.56",
		"-1234567.8": "-$1,234,567.80",
		"100000":     "$100,000.00",
	}
	for in, want := range cases {
		if got := FormatCurrency(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatShortDate(t *testing.T) {
	if got := FormatShortDate("2024-01-02"); got != "Jan 2" {
		t.Fatalf("got %q", got)
	}
	if got := FormatShortDate("yesterday"); got != "yesterday" {
		t.Fatalf("got %q", got)
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Jane Q Doe":     "JQ",
		"mark fleming":   "MF",
		"Solo":           "S",
		"":               "",
		"  élan  vital ": "ÉV",
	}
	for in, want := range cases {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}
