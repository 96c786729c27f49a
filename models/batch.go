package models

import "time"

// Batch — one harvested lot recorded on the traceability ledger.
// Field names and tags match the ledger API exactly; the gateway never
// writes these documents, it only reads them back via history sync.
type Batch struct {
	ID         string    `json:"_id"`
	BatchID    string    `json:"batchId"`
	HerbType   string    `json:"herbType"`
	QuantityKg float64   `json:"quantityKg"`
	CreatedAt  time.Time `json:"createdAt"`

	// Lifecycle state is server-controlled (e.g. "created", "in-transit",
	// "verified"); this side only observes it.
	Status string `json:"status"`

	// Optional QR payload the ledger may attach at creation time.
	QRPayload string `json:"qrPayload,omitempty"`
}

// Coordinates — one GPS fix captured at submission time. Nil lat/lng means
// the position could not be determined; that is a valid outcome, not an
// error (see capture.CaptureLocation).
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Absent reports whether no position was captured.
func (c Coordinates) Absent() bool { return c.Lat == nil && c.Lng == nil }
