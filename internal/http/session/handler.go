package session

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akhaled-io/ftaledger/internal/extraction"
	"github.com/akhaled-io/ftaledger/internal/opening"
	"github.com/akhaled-io/ftaledger/internal/session"
	"github.com/akhaled-io/ftaledger/internal/workflow"
)

// 16 MiB per document upload.
const maxDocumentSize = 16 << 20

type Handler struct {
	svc       *session.Service
	extractor extraction.DocumentExtractor
}

// NewHandler wires the session routes. extractor may be nil; the opening
// extract endpoint then answers 503.
func NewHandler(svc *session.Service, extractor extraction.DocumentExtractor) *Handler {
	return &Handler{svc: svc, extractor: extractor}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/advance", h.advance)
	r.Post("/{id}/back", h.back)
	r.Post("/{id}/vat", h.setVat)
	r.Post("/{id}/opening", h.setOpening)
	r.Post("/{id}/opening/extract", h.extractOpening)
}

type createSessionRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sess)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(sessions)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sess)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type answerPayload struct {
	Answers map[string]string `json:"answers,omitempty"`
}

// advance records any submitted answers, then attempts the forward
// transition. Gate failures come back as 409 with the gate's message; the
// stage is unchanged.
func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req answerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		for key, value := range req.Answers {
			sess.Answer(key, value)
		}
	}

	if err := sess.Next(); err != nil {
		if errors.Is(err, workflow.ErrNotBalanced) || errors.Is(err, workflow.ErrQuestionnaireIncomplete) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.save(w, r, sess)
}

func (h *Handler) back(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	sess.Back()

	h.save(w, r, sess)
}

type vatStatusRequest struct {
	Registered bool `json:"registered"`
	Filings    bool `json:"filings"`
}

func (h *Handler) setVat(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req vatStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.SetVatStatus(req.Registered, req.Filings)

	h.save(w, r, sess)
}

type openingRequest struct {
	Category opening.CategoryName `json:"category"`
	Name     string               `json:"name"`
	Debit    decimal.Decimal      `json:"debit"`
	Credit   decimal.Decimal      `json:"credit"`
}

func (h *Handler) setOpening(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	var req openingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "account name required", http.StatusBadRequest)
		return
	}

	sess.SetOpening(req.Category, req.Name, req.Debit, req.Credit)

	h.save(w, r, sess)
}

// extractOpening accepts uploaded documents under the "documents" field,
// runs the extractor, and merges the figures into the opening balance set.
// Values that match no opening account are dropped, never guessed.
func (h *Handler) extractOpening(w http.ResponseWriter, r *http.Request) {
	if h.extractor == nil {
		http.Error(w, "extractor not configured", http.StatusServiceUnavailable)
		return
	}

	sess, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		http.Error(w, "no documents uploaded", http.StatusBadRequest)
		return
	}

	documents := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(f)
		f.Close()

		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		documents = append(documents, data)
	}

	values, err := h.extractor.Extract(r.Context(), documents)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	sess.MergeExtractedOpening(values)

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

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sess)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
