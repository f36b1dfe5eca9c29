package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

func tx(desc string, debit, credit int64, category string) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
		Category:    category,
	}
}

func TestIngest_ResolvesCategories(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{
		tx("Stationery World LLC", 150, 0, "office supplies"),
		tx("Unknown payee", 50, 0, "mystery category"),
		tx("DEWA bill", 300, 0, ""),
	})

	require.Len(t, l.Transactions, 3)
	assert.Equal(t, "Expenses | Administrative | Office Supplies & Stationery", l.Transactions[0].Category)
	assert.Equal(t, taxonomy.Uncategorized, l.Transactions[1].Category)
	assert.Equal(t, taxonomy.Uncategorized, l.Transactions[2].Category)
	assert.Equal(t, 2, l.UncategorizedCount())
}

func TestBulkApply_ClearsSelection(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{
		tx("a", 10, 0, ""),
		tx("b", 20, 0, ""),
		tx("c", 30, 0, ""),
	})

	l.ToggleSelect(0)
	l.ToggleSelect(2)

	changed := l.BulkApply("Revenue | Sales Revenue")
	assert.Equal(t, 2, changed)
	assert.Empty(t, l.Selection)
	assert.Equal(t, "Revenue | Sales Revenue", l.Transactions[0].Category)
	assert.Equal(t, taxonomy.Uncategorized, l.Transactions[1].Category)
	assert.Equal(t, "Revenue | Sales Revenue", l.Transactions[2].Category)
}

func TestFindAndReplace(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{
		tx("SALIK recharge", 10, 0, ""),
		tx("Salik topup", 15, 0, ""),
		tx("Lunch", 40, 0, ""),
	})

	changed, err := l.FindAndReplace("salik", "Expenses | Selling & Distribution | Delivery Charges")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, taxonomy.Uncategorized, l.Transactions[2].Category)

	_, err = l.FindAndReplace("", "Revenue | Sales Revenue")
	assert.ErrorIs(t, err, ledger.ErrNothingToDo)

	_, err = l.FindAndReplace("salik", "  ")
	assert.ErrorIs(t, err, ledger.ErrNothingToDo)
}

// Deleting row 2 from selection {1,2,3} must yield {1,2}.
func TestDelete_ReindexesSelection(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{
		tx("r0", 1, 0, ""), tx("r1", 1, 0, ""), tx("r2", 1, 0, ""),
		tx("r3", 1, 0, ""), tx("r4", 1, 0, ""),
	})

	l.ToggleSelect(1)
	l.ToggleSelect(2)
	l.ToggleSelect(3)

	l.Delete(2)

	require.Len(t, l.Transactions, 4)
	assert.Equal(t, map[int]struct{}{1: {}, 2: {}}, l.Selection)
	assert.Equal(t, "r3", l.Transactions[2].Description)
}

func TestApplyCategorized_RevalidatesSuggestions(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{tx("coffee", 12, 0, "")})
	id := l.Transactions[0].ID

	l.ApplyCategorized([]ledger.Transaction{
		{ID: id, Category: "travel and entertainment", Confidence: 0.92},
		{ID: uuid.New(), Category: "Revenue | Sales Revenue"}, // unknown row, ignored
	})

	require.Len(t, l.Transactions, 1)
	assert.Equal(t, "Expenses | Selling & Distribution | Travel & Entertainment", l.Transactions[0].Category)
	assert.InDelta(t, 0.92, l.Transactions[0].Confidence, 1e-9)
}

func TestCategorySummary(t *testing.T) {
	l := ledger.New()
	l.Ingest([]ledger.Transaction{
		tx("inv 1", 0, 1000, "Revenue | Sales Revenue"),
		tx("inv 2", 0, 500, "sales revenue"),
		tx("rent q1", 2000, 0, "Rent Expense"),
		tx("??", 99, 0, ""),
	})

	totals := l.CategorySummary()
	require.Len(t, totals, 2)

	assert.Equal(t, "Sales Revenue", totals[0].Account)
	assert.True(t, totals[0].Credit.Equal(decimal.NewFromInt(1500)))
	assert.True(t, totals[0].Debit.IsZero())

	assert.Equal(t, "Rent Expense", totals[1].Account)
	assert.True(t, totals[1].Debit.Equal(decimal.NewFromInt(2000)))
}
