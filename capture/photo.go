package capture

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// Selection is one file-picker event from the host view. A nil File means
// the picker was dismissed without choosing anything.
type Selection struct {
	Filename string
	File     io.Reader
}

// PendingPhoto is the inline-encoded image awaiting submission. The data:
// URL form serves both network transmission and direct preview rendering.
type PendingPhoto struct {
	DataURL  string
	Filename string
}

// encodePhoto reads the whole selection and produces a data: URL. No type or
// size limits are enforced here; the host may add them in front.
func encodePhoto(sel Selection) (PendingPhoto, error) {
	data, err := io.ReadAll(sel.File)
	if err != nil {
		return PendingPhoto{}, fmt.Errorf("read photo: %w", err)
	}
	mime := http.DetectContentType(data)
	return PendingPhoto{
		DataURL:  "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		Filename: sel.Filename,
	}, nil
}
