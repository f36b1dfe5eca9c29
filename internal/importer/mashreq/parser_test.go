package mashreq_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/importer/mashreq"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

const accountCSV = `Account Statement,,,,
Account Number,019000012345,,,
,,,,
Transaction Date,Description,Debit,Credit,Balance
05/01/2025,POS DEWA HEAD OFFICE,"1,250.00",,"8,750.00"
12/01/2025,TT REF 884 CLIENT PAYMENT,,"5,000.00","13,750.00"
20/01/2025,CHARGES SALARIES JAN,"4,000.00",,"9,750.00"
,,,,
End of statement,,,,
`

func TestParse_AccountProfile(t *testing.T) {
	p := mashreq.New()

	txs, summary, err := p.Parse(strings.NewReader(accountCSV), "jan.csv")
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "POS DEWA HEAD OFFICE", txs[0].Description)
	assert.True(t, txs[0].Debit.Equal(d("1250")))
	assert.True(t, txs[0].Credit.IsZero())
	assert.Equal(t, taxonomy.Uncategorized, txs[0].Category)
	assert.Equal(t, "jan.csv", txs[0].SourceFile)
	assert.Equal(t, 2025, txs[0].Date.Year())

	assert.True(t, txs[1].Credit.Equal(d("5000")))

	// Opening backs the first movement out of its balance: 8750 + 1250.
	require.NotNil(t, summary)
	assert.True(t, summary.OpeningBalance.Equal(d("10000")))
	assert.True(t, summary.ClosingBalance.Equal(d("9750")))
}

const cardCSV = `Transaction Date,Description,Amount
03-02-2025,CAREEM RIDES,54.00
07-02-2025,REFUND NOON.COM,-120.00
`

func TestParse_CardProfile(t *testing.T) {
	p := mashreq.New()

	txs, summary, err := p.Parse(strings.NewReader(cardCSV), "card.csv")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	// Card spend is a debit; refunds come back as credits.
	assert.True(t, txs[0].Debit.Equal(d("54")))
	assert.True(t, txs[1].Credit.Equal(d("120")))

	// No balance column, no reconciliation summary.
	assert.Nil(t, summary)
}

func TestParse_NoMatchingProfile(t *testing.T) {
	p := mashreq.New()

	_, _, err := p.Parse(strings.NewReader("foo,bar\n1,2\n"), "x.csv")
	assert.Error(t, err)
}

func TestParse_SkipsFooterAndBlankRows(t *testing.T) {
	p := mashreq.New()

	txs, _, err := p.Parse(strings.NewReader(accountCSV), "jan.csv")
	require.NoError(t, err)

	for _, tx := range txs {
		assert.NotEmpty(t, tx.Description)
		assert.False(t, tx.Debit.IsZero() && tx.Credit.IsZero())
	}
}
