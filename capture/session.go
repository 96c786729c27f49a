package capture

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"herbtrace/ledger"
	"herbtrace/models"
)

// LedgerAPI is the slice of the remote traceability API the session needs.
// *ledger.Client satisfies it; tests substitute fakes.
type LedgerAPI interface {
	AddBatch(ctx context.Context, in ledger.AddBatchRequest) (*ledger.AddBatchResponse, error)
	History(ctx context.Context) ([]models.Batch, error)
}

// DraftForm is the in-progress batch entry. QuantityKg stays raw text until
// submission; conversion and validation happen in Submit.
type DraftForm struct {
	HerbType   string `json:"herbType"`
	QuantityKg string `json:"quantityKg"`
	Notes      string `json:"notes"`
}

// SubmissionResult is what one Submit call surfaces to the user.
type SubmissionResult struct {
	OK        bool          `json:"ok"`
	Invalid   bool          `json:"invalid,omitempty"` // rejected before any network call
	Notice    string        `json:"notice"`
	QRDataURL string        `json:"qrDataUrl,omitempty"`
	Batch     *models.Batch `json:"batch,omitempty"`
}

// Snapshot is a consistent read of the session state for the host view.
type Snapshot struct {
	Draft        DraftForm      `json:"draft"`
	PhotoDataURL string         `json:"photoDataUrl,omitempty"`
	Batches      []models.Batch `json:"batches"`
	QRImage      string         `json:"qrImage,omitempty"`
}

var errInvalidQuantity = errors.New("quantity must be a number")

// Session owns the mutable capture state for one farmer: the draft form, the
// pending photo, the synced batch history, and the current QR display.
// State is guarded by a mutex, but concurrent submissions are deliberately
// not serialized: both run, and the last response to land wins.
type Session struct {
	api     LedgerAPI
	locator PositionProvider
	log     *zap.Logger

	mu      sync.Mutex
	draft   DraftForm
	photo   PendingPhoto
	batches []models.Batch
	qrImage string
}

func NewSession(api LedgerAPI, locator PositionProvider, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{api: api, locator: locator, log: log}
}

// SetDraft replaces the draft form with view-entered values.
func (s *Session) SetDraft(d DraftForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

// IngestPhoto encodes a newly selected photo, replacing any previous one.
// A selection without a file is a no-op.
func (s *Session) IngestPhoto(sel Selection) error {
	if sel.File == nil {
		return nil
	}
	photo, err := encodePhoto(sel)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = photo
	return nil
}

// LatestBatch returns the most recently synced batch, if any is known.
func (s *Session) LatestBatch() (models.Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.batches) == 0 {
		return models.Batch{}, false
	}
	return s.batches[0], true
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	batches := make([]models.Batch, len(s.batches))
	copy(batches, s.batches)
	return Snapshot{
		Draft:        s.draft,
		PhotoDataURL: s.photo.DataURL,
		Batches:      batches,
		QRImage:      s.qrImage,
	}
}

// Submit runs the capture workflow end to end: validate the draft, capture a
// fresh GPS fix (always, the device may have moved), build the payload, and
// post it to the ledger. Success clears the draft and photo and triggers one
// history refresh; failure leaves everything as entered so the farmer can
// retry.
func (s *Session) Submit(ctx context.Context) SubmissionResult {
	s.mu.Lock()
	draft := s.draft
	photo := s.photo
	s.mu.Unlock()

	qty, err := parseQuantity(draft.QuantityKg)
	if err != nil {
		return SubmissionResult{Invalid: true, Notice: "Quantity must be a valid number of kilograms"}
	}
	if strings.TrimSpace(draft.HerbType) == "" {
		return SubmissionResult{Invalid: true, Notice: "Herb type is required"}
	}

	coords := CaptureLocation(ctx, s.locator)

	id := uuid.NewString()
	log := s.log.With(zap.String("submission", id))
	log.Info("submitting batch",
		zap.String("herbType", draft.HerbType),
		zap.Float64("quantityKg", qty),
		zap.Bool("gps", !coords.Absent()),
		zap.Bool("photo", photo.DataURL != ""))

	resp, err := s.api.AddBatch(ledger.WithRequestID(ctx, id), ledger.AddBatchRequest{
		HerbType:   draft.HerbType,
		QuantityKg: qty,
		PhotoURL:   photo.DataURL,
		GPS:        coords,
		Notes:      draft.Notes,
	})
	if err != nil {
		log.Warn("batch submission failed", zap.Error(err))
		notice := "Create batch failed"
		var apiErr *ledger.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			notice = apiErr.Message
		}
		return SubmissionResult{Notice: notice}
	}

	s.mu.Lock()
	s.draft = DraftForm{}
	s.photo = PendingPhoto{}
	if resp.QRDataURL != "" {
		s.qrImage = resp.QRDataURL
	}
	s.mu.Unlock()

	s.RefreshHistory(ctx)

	return SubmissionResult{
		OK:        true,
		Notice:    "Batch created",
		QRDataURL: resp.QRDataURL,
		Batch:     &resp.Batch,
	}
}

// RefreshHistory replaces the local batch collection with the ledger's
// current list. Failures degrade silently to the stale list; they are
// logged, never surfaced as a blocking error.
func (s *Session) RefreshHistory(ctx context.Context) {
	batches, err := s.api.History(ctx)
	if err != nil {
		s.log.Warn("history sync failed", zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = batches
}

// parseQuantity converts the raw form text to kilograms. Only finite,
// non-negative values ever reach the wire.
func parseQuantity(raw string) (float64, error) {
	qty, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, errInvalidQuantity
	}
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
		return 0, errInvalidQuantity
	}
	return qty, nil
}
