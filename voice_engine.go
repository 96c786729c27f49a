package main

import (
	"sync"

	"herbtrace/voice"
)

// relayEngine adapts view-relayed transcripts to the voice.Engine
// capability: the browser runs the actual recognizer (configured with the
// locale we expose in the session state) and posts final transcripts here.
// Like single-utterance recognition engines, delivering one result ends the
// session, which exercises the dispatcher's automatic listening reset.
type relayEngine struct {
	mu sync.Mutex
	cb *voice.Callbacks
}

func (e *relayEngine) StartSession(_ string, cb voice.Callbacks) (voice.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cb = &cb
	return &relaySession{engine: e}, nil
}

// Deliver pushes one final transcript into the active session. Returns
// false when no session is live (the transcript is dropped).
func (e *relayEngine) Deliver(transcript string) bool {
	e.mu.Lock()
	cb := e.cb
	e.cb = nil
	e.mu.Unlock()
	if cb == nil {
		return false
	}
	if cb.OnResult != nil {
		cb.OnResult(transcript)
	}
	if cb.OnEnd != nil {
		cb.OnEnd()
	}
	return true
}

type relaySession struct {
	engine *relayEngine
}

func (s *relaySession) Stop() {
	s.engine.mu.Lock()
	defer s.engine.mu.Unlock()
	s.engine.cb = nil
}
