// Package ledger is the HTTP client for the remote traceability API that
// anchors farmer batches. The gateway consumes this API; it never implements
// or persists any of it locally.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"herbtrace/models"
)

// AddBatchRequest is the payload for POST /api/farmer/add-batch.
type AddBatchRequest struct {
	HerbType   string             `json:"herbType"`
	QuantityKg float64            `json:"quantityKg"`
	PhotoURL   string             `json:"photoUrl"`
	GPS        models.Coordinates `json:"gps"`
	Notes      string             `json:"notes"`
}

// AddBatchResponse — the ledger returns the stored batch and, when QR
// rendering succeeded server-side, an inline image for immediate display.
type AddBatchResponse struct {
	QRDataURL string       `json:"qrDataUrl,omitempty"`
	Batch     models.Batch `json:"batch"`
}

type historyResponse struct {
	Batches []models.Batch `json:"batches"`
}

// APIError is a non-2xx ledger response. Message carries the server-provided
// human-readable reason when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ledger %d", e.Status)
}

type ctxKey string

const requestIDKey ctxKey = "requestID"

// WithRequestID attaches a correlation id that do() forwards as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Client talks to one ledger deployment. Token, when set, is forwarded as a
// bearer credential issued out-of-band (the gateway has no auth shell of
// its own).
type Client struct {
	BaseURL string
	Token   string

	http *http.Client
}

// New returns a Client with sane timeouts.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:4000"
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		http:    &http.Client{Timeout: 25 * time.Second},
	}
}

// AddBatch calls POST {BaseURL}/api/farmer/add-batch.
func (c *Client) AddBatch(ctx context.Context, in AddBatchRequest) (*AddBatchResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal add-batch req: %w", err)
	}
	var out AddBatchResponse
	if err := c.do(ctx, http.MethodPost, "/api/farmer/add-batch", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History calls GET {BaseURL}/api/farmer/history. A response without a
// batches list yields an empty slice, never nil-deref downstream.
func (c *Client) History(ctx context.Context) ([]models.Batch, error) {
	var out historyResponse
	if err := c.do(ctx, http.MethodGet, "/api/farmer/history", nil, &out); err != nil {
		return nil, err
	}
	if out.Batches == nil {
		return []models.Batch{}, nil
	}
	return out.Batches, nil
}

// BatchByID calls GET {BaseURL}/api/farmer/batch/{batchId}. The endpoint
// mirrors the history shape and returns zero or one batch.
func (c *Client) BatchByID(ctx context.Context, batchID string) ([]models.Batch, error) {
	var out historyResponse
	if err := c.do(ctx, http.MethodGet, "/api/farmer/batch/"+batchID, nil, &out); err != nil {
		return nil, err
	}
	return out.Batches, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	rid, _ := ctx.Value(requestIDKey).(string)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ledger call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode ledger resp: %w", err)
		}
	}
	return nil
}

// serverMessage pulls the {message} field out of an error body, if any.
func serverMessage(data []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &e) == nil {
		return e.Message
	}
	return ""
}
