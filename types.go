package main

import (
	"herbtrace/capture"
	"herbtrace/models"
)

// Request/response DTOs. Keep them minimal and explicit.

type positionReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type transcriptReq struct {
	Transcript string `json:"transcript"`
}

type voiceStateResp struct {
	Listening bool   `json:"listening"`
	Notice    string `json:"notice,omitempty"`
}

type transcriptResp struct {
	Handled   bool `json:"handled"`
	Listening bool `json:"listening"`
}

type sessionStateResp struct {
	capture.Snapshot
	Listening   bool        `json:"listening"`
	VoiceLocale string      `json:"voiceLocale"`
	Directives  []directive `json:"directives"`
}

type historyResp struct {
	Batches []models.Batch `json:"batches"`
}
