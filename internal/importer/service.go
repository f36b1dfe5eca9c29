package importer

import (
	"fmt"
	"io"

	"github.com/akhaled-io/ftaledger/internal/importer/mashreq"
	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/reconcile"
)

type Service struct {
	mashreqImporter Importer
}

func NewService() *Service {
	return &Service{
		mashreqImporter: mashreq.New(),
	}
}

func (s *Service) Import(bank Bank, r io.Reader, sourceFile string) ([]ledger.Transaction, *reconcile.Summary, error) {
	var imp Importer

	switch bank {
	case BankMashreq:
		imp = s.mashreqImporter
	default:
		return nil, nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return imp.Parse(r, sourceFile)
}
