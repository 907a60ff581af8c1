package handlers

import (
	"net/http"
	"path/filepath"

	middlewarex "marianails/internal/http/middleware"
	"marianails/internal/services/gallery"
)

type pingResp struct {
	Status     string   `json:"status"`
	ImagesPath string   `json:"imagesPath"`
	Files      []string `json:"files"`
}

// Ping reports server status and the raw gallery directory contents. Debug only.
func Ping(svc *gallery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := svc.Dir()
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}

		files, err := svc.RawEntries(r.Context())
		if err != nil {
			middlewarex.Logger(r.Context()).Error().Err(err).Str("dir", path).Msg("ping: failed to read gallery directory")
			writeJSON(w, http.StatusInternalServerError, errorResp{Error: "cannot read gallery directory", Details: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, pingResp{Status: "online", ImagesPath: path, Files: files})
	}
}

// Liveness answers GET /test with a plaintext message.
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("The server is running correctly!"))
}
