package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type sessionResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Stage          int       `json:"stage"`
	StageName      string    `json:"stage_name"`
	Transactions   int       `json:"transactions"`
	Uncategorized  int       `json:"uncategorized"`
	Balanced       bool      `json:"balanced"`
	VatRegistered  bool      `json:"vat_registered"`
	VatFilings     bool      `json:"vat_filings"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toResponse(s *workflow.Session) sessionResponse {
	balanced := s.TrialBalance != nil && s.TrialBalance.IsBalanced()

	return sessionResponse{
		ID:            s.ID,
		Name:          s.Name,
		Stage:         int(s.Stage),
		StageName:     s.Stage.String(),
		Transactions:  len(s.Ledger.Transactions),
		Uncategorized: s.Ledger.UncategorizedCount(),
		Balanced:      balanced,
		VatRegistered: s.VatRegistered,
		VatFilings:    s.VatFilings,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toResponseList(sessions []*workflow.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toResponse(s))
	}

	return out
}
