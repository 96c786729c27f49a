package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"herbtrace/voice"
)

// handleVoiceStart begins a listening session. A device without a speech
// engine gets a notice instead of an error status; nothing else changes.
func (a *App) handleVoiceStart(w http.ResponseWriter, r *http.Request) {
	if err := a.voice.Start(); err != nil {
		if errors.Is(err, voice.ErrUnavailable) {
			writeJSON(w, http.StatusOK, voiceStateResp{Listening: false, Notice: "Voice not supported"})
			return
		}
		http.Error(w, "voice start failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, voiceStateResp{Listening: true})
}

func (a *App) handleVoiceStop(w http.ResponseWriter, r *http.Request) {
	a.voice.Stop()
	writeJSON(w, http.StatusOK, voiceStateResp{Listening: false})
}

// handleVoiceTranscript delivers one final transcript from the view's
// recognizer. Transcripts arriving while not listening are dropped.
func (a *App) handleVoiceTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	handled := a.engine.Deliver(req.Transcript)
	writeJSON(w, http.StatusOK, transcriptResp{Handled: handled, Listening: a.voice.Listening()})
}
