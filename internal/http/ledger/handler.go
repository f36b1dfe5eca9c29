package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/importer"
	coreledger "github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// 16 MiB per statement upload.
const maxImportSize = 16 << 20

type Handler struct {
	svc         *session.Service
	importer    *importer.Service
	categorizer extraction.Categorizer
}

// NewHandler wires the ledger routes. categorizer may be nil; the
// categorize endpoint then answers 503.
func NewHandler(svc *session.Service, imp *importer.Service, categorizer extraction.Categorizer) *Handler {
	return &Handler{svc: svc, importer: imp, categorizer: categorizer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/import", h.importStatement)
	r.Post("/categorize", h.categorize)
	r.Post("/bulk", h.bulkApply)
	r.Post("/find-replace", h.findReplace)
	r.Patch("/{index}", h.setCategory)
	r.Delete("/{index}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, toLedgerResponse(sess.Ledger))
}

// importStatement accepts one or more CSV uploads under the "statements"
// field, parses them with the bank profile named in the "bank" field, and
// ingests the rows plus their reconciliation summaries.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))

	files := r.MultipartForm.File["statements"]
	if len(files) == 0 {
		http.Error(w, "no statements uploaded", http.StatusBadRequest)
		return
	}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		txs, summary, err := h.importer.Import(bank, f, fh.Filename)
		f.Close()

		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		sess.IngestTransactions(txs, summary)
	}

	h.save(w, r, sess)
}

// categorize runs the AI categorizer over the uncategorized rows and
// applies its suggestions. Every suggestion still passes through the
// category resolver, so a bad suggestion lands back at UNCATEGORIZED.
func (h *Handler) categorize(w http.ResponseWriter, r *http.Request) {
	if h.categorizer == nil {
		http.Error(w, "categorizer not configured", http.StatusServiceUnavailable)
		return
	}

	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var pending []coreledger.Transaction
	for _, tx := range sess.Ledger.Transactions {
		if !tx.Categorized() {
			pending = append(pending, tx)
		}
	}

	if len(pending) == 0 {
		writeJSON(w, toLedgerResponse(sess.Ledger))
		return
	}

	suggested, err := h.categorizer.Categorize(r.Context(), pending)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	sess.Ledger.ApplyCategorized(suggested)

	h.save(w, r, sess)
}

type setCategoryRequest struct {
	Category string `json:"category"`
}

func (h *Handler) setCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	index, ok := h.rowIndex(w, r, sess)
	if !ok {
		return
	}

	var req setCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.Ledger.SetCategory(index, taxonomy.Resolve(req.Category))

	h.save(w, r, sess)
}

type bulkApplyRequest struct {
	Indices  []int  `json:"indices"`
	Category string `json:"category"`
}

func (h *Handler) bulkApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req bulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for _, index := range req.Indices {
		if index < 0 || index >= len(sess.Ledger.Transactions) {
			http.Error(w, "row index out of range", http.StatusUnprocessableEntity)
			return
		}

		sess.Ledger.ToggleSelect(index)
	}

	sess.Ledger.BulkApply(taxonomy.Resolve(req.Category))

	h.save(w, r, sess)
}

type findReplaceRequest struct {
	Find     string `json:"find"`
	Category string `json:"category"`
}

func (h *Handler) findReplace(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req findReplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := sess.Ledger.FindAndReplace(req.Find, taxonomy.Resolve(req.Category)); err != nil {
		if errors.Is(err, coreledger.ErrNothingToDo) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.save(w, r, sess)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	index, ok := h.rowIndex(w, r, sess)
	if !ok {
		return
	}

	sess.Ledger.Delete(index)

	h.save(w, r, sess)
}

func (h *Handler) rowIndex(w http.ResponseWriter, r *http.Request, sess *workflow.Session) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid row index", http.StatusBadRequest)
		return 0, false
	}

	if index < 0 || index >= len(sess.Ledger.Transactions) {
		http.Error(w, "row index out of range", http.StatusNotFound)
		return 0, false
	}

	return index, true
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

	writeJSON(w, toLedgerResponse(sess.Ledger))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
