package trialbalance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/session"
	coretb "github.com/akhaled-io/ftaledger/internal/trialbalance"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

type Handler struct {
	svc *session.Service
}

func NewHandler(svc *session.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/rebuild", h.rebuild)
	r.Post("/accounts", h.addAccount)
	r.Patch("/cells", h.setCell)
	r.Put("/breakdowns/{account}", h.saveBreakdown)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	h.render(w, sess)
}

// rebuild recomputes the table from the current ledger, opening balances
// and statement summaries. Saved breakdowns are replayed on top, so rows
// backed by a breakdown keep their sums.
func (h *Handler) rebuild(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	sess.RebuildTrialBalance()

	h.save(w, r, sess)
}

type addAccountRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req addAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "account name required", http.StatusBadRequest)
		return
	}

	sess.AddAccount(req.Name)

	h.save(w, r, sess)
}

type setCellRequest struct {
	Account string          `json:"account"`
	Field   coretb.Field    `json:"field"`
	Value   decimal.Decimal `json:"value"`
}

// setCell writes one debit or credit cell. Accounts backed by a breakdown
// reject direct edits with 409; the breakdown is the source of truth for
// those rows.
func (h *Handler) setCell(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req setCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Field != coretb.FieldDebit && req.Field != coretb.FieldCredit {
		http.Error(w, "field must be debit or credit", http.StatusBadRequest)
		return
	}

	if err := sess.SetCell(req.Account, req.Field, req.Value); err != nil {
		if errors.Is(err, workflow.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.save(w, r, sess)
}

type saveBreakdownRequest struct {
	Entries []coretb.BreakdownEntry `json:"entries"`
}

func (h *Handler) saveBreakdown(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	account := chi.URLParam(r, "account")

	var req saveBreakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.SaveBreakdown(account, req.Entries)

	h.save(w, r, sess)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*workflow.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	sess, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return sess, true
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, sess *workflow.Session) {
	if err := h.svc.Save(r.Context(), sess); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.render(w, sess)
}

type tableResponse struct {
	Table    *coretb.Table `json:"table"`
	Balanced bool          `json:"balanced"`
}

func (h *Handler) render(w http.ResponseWriter, sess *workflow.Session) {
	if sess.TrialBalance == nil {
		sess.RebuildTrialBalance()
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tableResponse{
		Table:    sess.TrialBalance,
		Balanced: sess.TrialBalance.IsBalanced(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
