// Package extraction defines the external-collaborator boundaries of the
// filing core: document value extraction and AI transaction categorization.
// Implementations live in subpackages; the core treats both as opaque and
// re-validates everything they return.
package extraction

import (
	"context"

	"github.com/akhaled-io/ftaledger/internal/ledger"
)

// DocumentExtractor pulls free-form key/value figures out of uploaded
// documents (opening balance sheets, VAT returns). Keys and values are
// strings; the opening-balance merge owns normalization and numeric
// parsing.
type DocumentExtractor interface {
	Extract(ctx context.Context, documents [][]byte) (map[string]string, error)
}

// Categorizer suggests a chart category per transaction. Returned rows
// carry suggested Category and Confidence values keyed by transaction ID;
// callers must pass them through the category resolver before acceptance —
// suggestions are never trusted as canonical.
type Categorizer interface {
	Categorize(ctx context.Context, txs []ledger.Transaction) ([]ledger.Transaction, error)
}
