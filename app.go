package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"herbtrace/capture"
	"herbtrace/ledger"
	"herbtrace/voice"
)

// directive is one deferred UI instruction for the host view: request input
// focus, scroll to a section, or show a notice. The view drains these via
// the session state endpoint.
type directive struct {
	Action  string `json:"action"` // focus | scroll | notice
	Target  string `json:"target,omitempty"`
	Message string `json:"message,omitempty"`
}

type App struct {
	cfg    Config
	log    *zap.Logger
	ledger *ledger.Client

	session *capture.Session
	feed    *capture.PositionFeed
	engine  *relayEngine
	voice   *voice.Dispatcher

	mu         sync.Mutex
	directives []directive
}

func newApp(cfg Config, log *zap.Logger) *App {
	a := &App{
		cfg:    cfg,
		log:    log,
		ledger: ledger.New(cfg.LedgerURL, cfg.LedgerToken),
		feed:   capture.NewPositionFeed(),
		engine: &relayEngine{},
	}
	a.session = capture.NewSession(a.ledger, a.feed, log)
	a.voice = voice.NewDispatcher(a.engine, cfg.VoiceLocale, voice.Actions{
		FocusBatchInput: func() { a.pushDirective(directive{Action: "focus", Target: "herb-input"}) },
		ScrollToHistory: func() { a.pushDirective(directive{Action: "scroll", Target: "batches-list"}) },
		GenerateQrForLatest: func() {
			// Silent no-op until at least one batch is known locally.
			if b, ok := a.session.LatestBatch(); ok {
				a.generateQrFor(b.BatchID)
			}
		},
	}, log)
	return a
}

// generateQrFor looks the batch up on the ledger. The endpoint cannot
// regenerate a QR — the image is only issued at creation time — so a found
// batch is merely acknowledged to the user.
func (a *App) generateQrFor(batchID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	batches, err := a.ledger.BatchByID(ctx, batchID)
	if err != nil || len(batches) == 0 {
		a.log.Warn("qr lookup failed", zap.String("batchId", batchID), zap.Error(err))
		a.pushDirective(directive{Action: "notice", Message: "Could not generate QR"})
		return
	}
	a.pushDirective(directive{Action: "notice", Message: "Batch found. Use QR returned at creation or recreate on server."})
}

func (a *App) pushDirective(d directive) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.directives = append(a.directives, d)
}

// drainDirectives hands all pending directives to the view and clears them.
func (a *App) drainDirectives() []directive {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.directives
	a.directives = nil
	if out == nil {
		out = []directive{}
	}
	return out
}
