package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/importer"
)

func TestService_Import_UnknownBank(t *testing.T) {
	svc := importer.NewService()

	_, _, err := svc.Import(importer.Bank("hsbc"), strings.NewReader(""), "x.csv")
	assert.Error(t, err)
}

func TestService_Import_Mashreq(t *testing.T) {
	svc := importer.NewService()

	csv := "Transaction Date,Description,Amount\n01/03/2025,TAXI,25.50\n"

	txs, summary, err := svc.Import(importer.BankMashreq, strings.NewReader(csv), "mar.csv")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Nil(t, summary)
	assert.Equal(t, "TAXI", txs[0].Description)
}
