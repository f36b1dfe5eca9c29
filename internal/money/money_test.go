package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akhaled-io/ftaledger/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain", input: "1234.56", want: "1234.56"},
		{name: "ThousandsSeparators", input: "1,234,567.89", want: "1234567.89"},
		{name: "Negative", input: "-42.10", want: "-42.1"},
		{name: "Whitespace", input: "  100 ", want: "100"},
		{name: "Empty", input: "", want: "0"},
		{name: "Garbage", input: "n/a", want: "0"},
		{name: "PartialNumber", input: "12abc", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Parse(tt.input).String())
		})
	}
}
