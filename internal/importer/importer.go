package importer

import (
	"io"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
)

// Bank identifies a supported statement export format.
type Bank string

const (
	BankMashreq Bank = "mashreq"
)

// Importer parses one bank's CSV export into ledger rows plus the reported
// balance pair when the export carries a running balance column. sourceFile
// labels the rows and the reconciliation summary.
type Importer interface {
	Parse(r io.Reader, sourceFile string) ([]ledger.Transaction, *reconcile.Summary, error)
}
