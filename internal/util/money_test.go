package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"250", "250"},
		{"1500", "1,500"},
		{"1234567", "1,234,567"},
		{"1500.5", "1,500.5"},
		{"0", "0"},
	}

	for _, tt := range tests {
		in, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("bad test input %q: %v", tt.in, err)
		}
		if got := FormatMoney(in); got != tt.want {
			t.Errorf("FormatMoney(%s): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
