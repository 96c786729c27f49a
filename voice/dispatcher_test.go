package voice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	locale   string
	cb       Callbacks
	startErr error
	started  int
}

func (e *fakeEngine) StartSession(locale string, cb Callbacks) (Session, error) {
	if e.startErr != nil {
		return nil, e.startErr
	}
	e.locale = locale
	e.cb = cb
	e.started++
	return &fakeSession{engine: e}, nil
}

type fakeSession struct {
	engine  *fakeEngine
	stopped int
}

func (s *fakeSession) Stop() { s.stopped++ }

func TestClassify(t *testing.T) {
	cases := []struct {
		transcript string
		want       Intent
	}{
		{"add batch now", IntentFocusBatchInput},
		{"ADD BATCH", IntentFocusBatchInput},
		{"नई बैच", IntentFocusBatchInput},
		{"show me the history please", IntentScrollToHistory},
		{"इतिहास", IntentScrollToHistory},
		{"generate qr", IntentGenerateQrForLatest},
		{"क्यूआर", IntentGenerateQrForLatest},
		{"hello there", IntentUnrecognized},
		{"", IntentUnrecognized},
		// "qr" alone is not a keyword
		{"qr", IntentUnrecognized},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.transcript), "transcript %q", c.transcript)
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Both keyword sets match; only the higher-priority intent fires.
	assert.Equal(t, IntentFocusBatchInput, Classify("add batch to history"))
	assert.Equal(t, IntentScrollToHistory, Classify("history then generate qr"))
}

func TestStartWithoutEngine(t *testing.T) {
	d := NewDispatcher(nil, "hi-IN", Actions{}, nil)
	err := d.Start()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, d.Listening())
}

func TestStartFailurePropagatesAsUnavailable(t *testing.T) {
	d := NewDispatcher(&fakeEngine{startErr: errors.New("mic busy")}, "hi-IN", Actions{}, nil)
	require.ErrorIs(t, d.Start(), ErrUnavailable)
	assert.False(t, d.Listening())
}

func TestStartStopStateMachine(t *testing.T) {
	engine := &fakeEngine{}
	d := NewDispatcher(engine, "hi-IN", Actions{}, nil)

	require.NoError(t, d.Start())
	assert.True(t, d.Listening())
	assert.Equal(t, "hi-IN", engine.locale)

	// Second start while listening is a no-op; the session stays exclusive.
	require.NoError(t, d.Start())
	assert.Equal(t, 1, engine.started)

	d.Stop()
	assert.False(t, d.Listening())

	// Stop when idle is a no-op.
	d.Stop()
	assert.False(t, d.Listening())
}

func TestEngineEndResetsListening(t *testing.T) {
	engine := &fakeEngine{}
	d := NewDispatcher(engine, "en-US", Actions{}, nil)
	require.NoError(t, d.Start())

	engine.cb.OnEnd()
	assert.False(t, d.Listening())

	// A fresh session can be started afterwards.
	require.NoError(t, d.Start())
	assert.True(t, d.Listening())
}

func TestDispatchInvokesRegisteredAction(t *testing.T) {
	var focused, scrolled, qr int
	engine := &fakeEngine{}
	d := NewDispatcher(engine, "hi-IN", Actions{
		FocusBatchInput:     func() { focused++ },
		ScrollToHistory:     func() { scrolled++ },
		GenerateQrForLatest: func() { qr++ },
	}, nil)
	require.NoError(t, d.Start())

	engine.cb.OnResult("please add batch")
	engine.cb.OnResult("इतिहास")
	engine.cb.OnResult("generate qr now")
	engine.cb.OnResult("unintelligible mumbling")

	assert.Equal(t, 1, focused)
	assert.Equal(t, 1, scrolled)
	assert.Equal(t, 1, qr)
}

func TestUnrecognizedHasNoSideEffect(t *testing.T) {
	var invoked int
	engine := &fakeEngine{}
	d := NewDispatcher(engine, "hi-IN", Actions{
		FocusBatchInput:     func() { invoked++ },
		ScrollToHistory:     func() { invoked++ },
		GenerateQrForLatest: func() { invoked++ },
	}, nil)
	require.NoError(t, d.Start())

	engine.cb.OnResult("what is the weather")
	assert.Zero(t, invoked)
}

func TestDispatchWithNilActions(t *testing.T) {
	engine := &fakeEngine{}
	d := NewDispatcher(engine, "hi-IN", Actions{}, nil)
	require.NoError(t, d.Start())

	// Must not panic when no action is registered for the intent.
	engine.cb.OnResult("add batch")
}
