package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

func TestResolve(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  string
	}

	tests := []testCase{
		{
			name:  "Empty",
			input: "",
			want:  taxonomy.Uncategorized,
		},
		{
			name:  "WhitespaceOnly",
			input: "   ",
			want:  taxonomy.Uncategorized,
		},
		{
			name:  "SentinelPassthrough",
			input: "uncategorized",
			want:  taxonomy.Uncategorized,
		},
		{
			name:  "ExactLeaf",
			input: "Rent Expense",
			want:  "Expenses | Administrative | Rent Expense",
		},
		{
			name:  "CaseInsensitive",
			input: "rent expense",
			want:  "Expenses | Administrative | Rent Expense",
		},
		{
			name:  "AmpersandSpelledOut",
			input: "salaries and wages",
			want:  "Expenses | Administrative | Salaries & Wages",
		},
		{
			name:  "ContainmentInputInsideLeaf",
			input: "office supplies",
			want:  "Expenses | Administrative | Office Supplies & Stationery",
		},
		{
			name:  "ContainmentLeafInsideInput",
			input: "monthly rent expense for warehouse",
			want:  "Expenses | Administrative | Rent Expense",
		},
		{
			name:  "PathValidatedByLeaf",
			input: "whatever | wrong middle | vat payable",
			want:  "Liabilities | Current Liabilities | VAT Payable",
		},
		{
			name:  "FlatMainCategoryPath",
			input: "Revenue | Sales Revenue",
			want:  "Revenue | Sales Revenue",
		},
		{
			name:  "CurlyQuotesAndDashes",
			input: "owner’s current account",
			want:  "Equity | Owner's Current Account",
		},
		{
			name:  "NonCurrentDashVariant",
			input: "long–term loans",
			want:  "Liabilities | Non-Current Liabilities | Long-Term Loans",
		},
		{
			name:  "NoMatch",
			input: "quantum flux compensator",
			want:  taxonomy.Uncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.Resolve(tt.input))
		})
	}
}

// Resolving an already-canonical path must be a fixed point.
func TestResolve_Idempotent(t *testing.T) {
	for _, leaf := range taxonomy.Leaves() {
		canonical := taxonomy.Resolve(leaf.Account)
		require.NotEqual(t, taxonomy.Uncategorized, canonical, "leaf %q must resolve", leaf.Account)
		assert.Equal(t, canonical, taxonomy.Resolve(canonical))
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, taxonomy.Key("Bank Accounts"), taxonomy.Key("  bank   ACCOUNTS "))
	assert.NotEqual(t, taxonomy.Key("Bank Accounts"), taxonomy.Key("Bank Charges"))
}

func TestLeafName(t *testing.T) {
	assert.Equal(t, "Rent Expense", taxonomy.LeafName("Expenses | Administrative | Rent Expense"))
	assert.Equal(t, "Sales Revenue", taxonomy.LeafName("Revenue | Sales Revenue"))
	assert.Equal(t, "Bank Accounts", taxonomy.LeafName("Bank Accounts"))
}
