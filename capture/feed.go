package capture

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoPosition means no usable device fix has been reported.
var ErrNoPosition = errors.New("no device position available")

// PositionFeed is the production PositionProvider: the host view relays the
// device's geolocation readings into Report, and CurrentPosition serves the
// most recent one as long as it is fresher than the caller's MaximumAge.
type PositionFeed struct {
	mu  sync.Mutex
	pos Position
	at  time.Time

	now func() time.Time
}

func NewPositionFeed() *PositionFeed {
	return &PositionFeed{now: time.Now}
}

// Report records a device fix. Newer fixes replace older ones.
func (f *PositionFeed) Report(pos Position) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = pos
	f.at = f.now()
}

// CurrentPosition returns the last reported fix, or ErrNoPosition when none
// was ever reported or the last one is older than opts.MaximumAge.
func (f *PositionFeed) CurrentPosition(_ context.Context, opts PositionOptions) (Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.at.IsZero() {
		return Position{}, ErrNoPosition
	}
	if opts.MaximumAge > 0 && f.now().Sub(f.at) > opts.MaximumAge {
		return Position{}, ErrNoPosition
	}
	return f.pos, nil
}
