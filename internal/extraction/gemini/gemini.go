// Package gemini implements the extraction and categorization collaborators
// over the Gemini API. Failures are returned to the caller untouched; the
// session state is never mutated on a failed call.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/akhaled-io/ftaledger/internal/ledger"
	"github.com/akhaled-io/ftaledger/internal/taxonomy"
)

// DefaultModel is the Gemini model used for both collaborators.
const DefaultModel = "gemini-2.5-flash"

// Client implements extraction.DocumentExtractor and
// extraction.Categorizer.
type Client struct {
	genai *genai.Client
	model string
}

// New creates a client. The API key is picked up from the environment by
// the genai SDK.
func New(ctx context.Context, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{genai: c, model: model}, nil
}

const extractPrompt = "You are a financial document reader.\n\n" +
	"Task:\n" +
	"- Read the attached documents (balance sheets, ledgers, VAT returns).\n" +
	"- Output STRICT JSON only: one flat object mapping snake_case account\n" +
	"  names to their numeric values as strings, e.g.\n" +
	"  {\"bank_accounts\": \"12500.00\", \"accounts_payable\": \"3200\"}.\n" +
	"- Skip totals and subtotals; report leaf accounts only.\n" +
	"- Do NOT wrap the response in code fences.\n"

// Extract pulls key/value figures out of uploaded PDF documents.
func (c *Client) Extract(ctx context.Context, documents [][]byte) (map[string]string, error) {
	parts := []*genai.Part{{Text: extractPrompt}}
	for _, doc := range documents {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: "application/pdf", Data: doc},
		})
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(stripFences(raw, "{", "}")), &values); err != nil {
		return nil, fmt.Errorf("unmarshal extraction response: %w", err)
	}

	return values, nil
}

type suggestion struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Categorize asks the model to place each transaction in the chart of
// accounts. The returned rows carry raw suggestions; callers resolve them
// before acceptance.
func (c *Client) Categorize(ctx context.Context, txs []ledger.Transaction) ([]ledger.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("You are a bookkeeping assistant. Assign each transaction below\n")
	sb.WriteString("to exactly one account from this chart:\n\n")

	for _, leaf := range taxonomy.Leaves() {
		sb.WriteString("- ")
		sb.WriteString(leaf.Path())
		sb.WriteString("\n")
	}

	sb.WriteString("\nTransactions (id | date | description | debit | credit):\n")

	for _, tx := range txs {
		fmt.Fprintf(&sb, "%s | %s | %s | %s | %s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.Description, tx.Debit, tx.Credit)
	}

	sb.WriteString("\nOutput STRICT JSON only: an array of objects with fields\n")
	sb.WriteString("\"id\", \"category\" (the account name), and \"confidence\" (0..1).\n")
	sb.WriteString("Do NOT wrap the response in code fences.\n")

	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: sb.String()}}}}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var suggestions []suggestion
	if err := json.Unmarshal([]byte(stripFences(raw, "[", "]")), &suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal categorization response: %w", err)
	}

	out := make([]ledger.Transaction, 0, len(suggestions))
	for _, s := range suggestions {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			continue
		}
		out = append(out, ledger.Transaction{
			ID:         id,
			Category:   s.Category,
			Confidence: s.Confidence,
		})
	}

	return out, nil
}

// stripFences removes Markdown code fences and surrounding junk the model
// sometimes emits despite instructions, keeping the outermost open..close
// span.
func stripFences(raw, openTok, closeTok string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, openTok); start != -1 {
		if end := strings.LastIndex(s, closeTok); end > start {
			s = s[start : end+1]
		}
	}

	return strings.TrimSpace(s)
}
