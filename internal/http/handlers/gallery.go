package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domain "marianails/internal/domain/gallery"
	middlewarex "marianails/internal/http/middleware"
	"marianails/internal/services/gallery"

	"github.com/rs/zerolog/log"
)

type errorResp struct {
	Error      string `json:"error,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
}

// ListGallery handles GET /api/galeria?page=&per_page=
func ListGallery(svc *gallery.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := gallery.ParseListRequest(q.Get("page"), q.Get("per_page"))

		res, err := svc.ListImages(r.Context(), req)
		if err != nil {
			writeListError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// writeListError maps service error kinds to status codes and payloads.
func writeListError(w http.ResponseWriter, r *http.Request, err error) {
	l := middlewarex.Logger(r.Context())
	kind := gallery.KindOf(err)
	details := err.Error()
	var se *gallery.ServiceError
	if errors.As(err, &se) {
		details = se.Err.Error()
	}

	switch kind {
	case domain.KindDirectoryNotFound:
		l.Warn().Err(err).Str("path", r.URL.Path).Msg("gallery directory not found")
		writeJSON(w, http.StatusNotFound, errorResp{Error: "gallery directory not found"})
	case domain.KindNoImagesFound:
		l.Warn().Str("path", r.URL.Path).Msg("gallery has no images")
		writeJSON(w, http.StatusNotFound, errorResp{
			Warning:    "no images found",
			Suggestion: "check the img/galeria folder",
		})
	case domain.KindReadError:
		l.Error().Err(err).Msg("failed to read gallery")
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "server error", Details: details})
	default:
		l.Error().Err(err).Msg("unexpected gallery error")
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal server error", Details: details})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}
