// Package capture implements the farmer-side capture workflow: geolocation,
// photo ingestion, and the batch submission session that ties them to the
// remote traceability ledger.
package capture

import (
	"context"
	"time"

	"herbtrace/models"
)

// Position is one device GPS fix.
type Position struct {
	Lat float64
	Lng float64
}

// PositionOptions mirrors the device geolocation request policy.
type PositionOptions struct {
	HighAccuracy bool
	MaximumAge   time.Duration
}

// PositionProvider is the injected device-location capability.
type PositionProvider interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// Fixed capture policy: prefer a high-accuracy fix, accept a cached one up
// to a minute old.
var capturePolicy = PositionOptions{HighAccuracy: true, MaximumAge: 60 * time.Second}

// CaptureLocation issues exactly one position request and never fails: any
// provider error, and a missing provider entirely, yield absent coordinates.
// Callers must treat absent coordinates as a normal outcome.
func CaptureLocation(ctx context.Context, p PositionProvider) models.Coordinates {
	if p == nil {
		return models.Coordinates{}
	}
	pos, err := p.CurrentPosition(ctx, capturePolicy)
	if err != nil {
		return models.Coordinates{}
	}
	lat, lng := pos.Lat, pos.Lng
	return models.Coordinates{Lat: &lat, Lng: &lng}
}
