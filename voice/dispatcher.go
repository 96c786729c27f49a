// Package voice turns continuous speech-to-text results into discrete
// command intents and invokes the actions registered for them.
package voice

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Intent is one recognized spoken command.
type Intent string

const (
	IntentFocusBatchInput     Intent = "focus-batch-input"
	IntentScrollToHistory     Intent = "scroll-to-history"
	IntentGenerateQrForLatest Intent = "generate-qr-latest"
	IntentUnrecognized        Intent = "unrecognized"
)

// Keyword sets per intent, in fixed priority order. Matching is
// substring-based on the lowercased transcript; only the first hit fires.
var keywordSets = []struct {
	intent   Intent
	keywords []string
}{
	{IntentFocusBatchInput, []string{"add batch", "नई बैच"}},
	{IntentScrollToHistory, []string{"history", "इतिहास"}},
	{IntentGenerateQrForLatest, []string{"generate qr", "क्यूआर"}},
}

// Classify maps a final transcript to an intent.
func Classify(transcript string) Intent {
	t := strings.ToLower(transcript)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(t, kw) {
				return set.intent
			}
		}
	}
	return IntentUnrecognized
}

// ErrUnavailable means the device has no speech-to-text capability. The
// caller turns this into a user-visible notice; nothing else changes.
var ErrUnavailable = errors.New("voice recognition not available")

// Callbacks are how a running engine session pushes events back.
type Callbacks struct {
	OnResult func(transcript string)
	OnEnd    func()
}

// Session is the handle for one continuous listening period.
type Session interface {
	Stop()
}

// Engine is the injected speech-to-text capability.
type Engine interface {
	StartSession(locale string, cb Callbacks) (Session, error)
}

// Actions are the side effects the dispatcher may invoke. Nil entries are
// skipped. Any guard on an action (e.g. "only when a batch is known")
// belongs to the wiring that registers it.
type Actions struct {
	FocusBatchInput     func()
	ScrollToHistory     func()
	GenerateQrForLatest func()
}

// Dispatcher owns the exclusive recognition session and the Idle/Listening
// state machine. Listening always reflects actual session liveness: both an
// explicit Stop and the engine ending the session on its own reset it.
type Dispatcher struct {
	engine  Engine
	locale  string
	actions Actions
	log     *zap.Logger

	mu        sync.Mutex
	session   Session
	listening bool
}

func NewDispatcher(engine Engine, locale string, actions Actions, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{engine: engine, locale: locale, actions: actions, log: log}
}

// Listening reports whether a recognition session is live.
func (d *Dispatcher) Listening() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listening
}

// Start begins a recognition session. Returns ErrUnavailable when the
// device has no engine; a second Start while listening is a no-op.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.engine == nil {
		return ErrUnavailable
	}
	if d.listening {
		return nil
	}
	sess, err := d.engine.StartSession(d.locale, Callbacks{
		OnResult: d.handleResult,
		OnEnd:    d.handleEnd,
	})
	if err != nil {
		d.log.Warn("voice session start failed", zap.Error(err))
		return ErrUnavailable
	}
	d.session = sess
	d.listening = true
	return nil
}

// Stop ends the active session if one exists; no-op otherwise.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	sess := d.session
	d.session = nil
	d.listening = false
	d.mu.Unlock()
	if sess != nil {
		sess.Stop()
	}
}

func (d *Dispatcher) handleEnd() {
	d.mu.Lock()
	d.session = nil
	d.listening = false
	d.mu.Unlock()
}

func (d *Dispatcher) handleResult(transcript string) {
	intent := Classify(transcript)
	d.log.Info("voice command", zap.String("transcript", transcript), zap.String("intent", string(intent)))
	switch intent {
	case IntentFocusBatchInput:
		if d.actions.FocusBatchInput != nil {
			d.actions.FocusBatchInput()
		}
	case IntentScrollToHistory:
		if d.actions.ScrollToHistory != nil {
			d.actions.ScrollToHistory()
		}
	case IntentGenerateQrForLatest:
		if d.actions.GenerateQrForLatest != nil {
			d.actions.GenerateQrForLatest()
		}
	}
}
