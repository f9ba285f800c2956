package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"subtitrari-noi-addon/internal/domain"
)

// SubtitleFinder is the lookup pipeline behind the subtitles route.
type SubtitleFinder interface {
	FindSubtitles(ctx context.Context, req domain.MediaRequest) []domain.SubtitleDescriptor
}

// Handler handles HTTP requests from the plugin host.
type Handler struct {
	finder   SubtitleFinder
	manifest Manifest
}

// NewHandler creates a new Handler serving DefaultManifest.
func NewHandler(finder SubtitleFinder) *Handler {
	return &Handler{finder: finder, manifest: DefaultManifest}
}

// Manifest serves the add-on manifest.
func (h *Handler) Manifest(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.manifest)
}

// Subtitles handles /subtitles/{type}/{id}.json. Bad ids answer with an empty list.
func (h *Handler) Subtitles(w http.ResponseWriter, r *http.Request) {
	mediaType := chi.URLParam(r, "type")
	id := strings.TrimSuffix(chi.URLParam(r, "id"), ".json")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	req, err := domain.ParseMediaRequest(mediaType, id)
	if err != nil {
		slog.Warn("Rejected subtitles request", "type", mediaType, "id", id, "error", err)
		writeJSON(w, domain.SubtitlesResponse{Subtitles: []domain.SubtitleDescriptor{}})
		return
	}

	slog.Info("Handling subtitles request",
		"type", req.Type,
		"imdb_id", req.IMDbID,
		"season", req.Season,
		"episode", req.Episode,
	)

	subtitles := h.finder.FindSubtitles(r.Context(), req)
	if subtitles == nil {
		subtitles = []domain.SubtitleDescriptor{}
	}
	writeJSON(w, domain.SubtitlesResponse{Subtitles: subtitles})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
