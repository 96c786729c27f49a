package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"herbtrace/capture"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleSessionState returns the full session snapshot plus any pending UI
// directives (which are consumed by this read).
func (a *App) handleSessionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionStateResp{
		Snapshot:    a.session.Snapshot(),
		Listening:   a.voice.Listening(),
		VoiceLocale: a.cfg.VoiceLocale,
		Directives:  a.drainDirectives(),
	})
}

// handleUpdateDraft overwrites the draft form with the view's field values.
func (a *App) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req capture.DraftForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	a.session.SetDraft(req)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleIngestPhoto accepts a multipart upload under the "photo" field. A
// request without a file leaves the pending photo unchanged.
func (a *App) handleIngestPhoto(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "ingested": false})
			return
		}
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := a.session.IngestPhoto(capture.Selection{Filename: header.Filename, File: file}); err != nil {
		http.Error(w, "photo read error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "ingested": true})
}

// handleReportPosition records a device GPS fix relayed by the view.
func (a *App) handleReportPosition(w http.ResponseWriter, r *http.Request) {
	var req positionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	a.feed.Report(capture.Position{Lat: req.Lat, Lng: req.Lng})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleSubmitBatch runs the submission workflow and maps the outcome to a
// status code: 200 created, 400 rejected before network, 502 ledger failure.
func (a *App) handleSubmitBatch(w http.ResponseWriter, r *http.Request) {
	res := a.session.Submit(r.Context())
	switch {
	case res.OK:
		writeJSON(w, http.StatusOK, res)
	case res.Invalid:
		writeJSON(w, http.StatusBadRequest, res)
	default:
		writeJSON(w, http.StatusBadGateway, res)
	}
}

// handleRefreshHistory re-syncs the batch list and returns it. A ledger
// failure degrades to the previously held list.
func (a *App) handleRefreshHistory(w http.ResponseWriter, r *http.Request) {
	a.session.RefreshHistory(r.Context())
	writeJSON(w, http.StatusOK, historyResp{Batches: a.session.Snapshot().Batches})
}
