package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"aquapoint/internal/imaging"
	"aquapoint/internal/models"
	"aquapoint/internal/storage"
	"aquapoint/internal/store"
)

// maxUploadSize caps media uploads (50 MB).
const maxUploadSize = 50 << 20

// thumbWidth is the width of generated image thumbnails in pixels.
const thumbWidth = 400

// allowedUploadTypes are the content types accepted for product media.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"video/mp4":     true,
	"video/webm":    true,
}

// Media groups the media library handlers. Uploads go to S3-compatible
// object storage; metadata lives in Postgres.
type Media struct {
	mediaStore *store.MediaStore
	storage    *storage.Client
}

// NewMedia creates a new Media handler group. storage may be nil when
// object storage is not configured; uploads then return 503.
func NewMedia(mediaStore *store.MediaStore, storage *storage.Client) *Media {
	return &Media{
		mediaStore: mediaStore,
		storage:    storage,
	}
}

// mediaResponse decorates a media record with its public URLs.
type mediaResponse struct {
	models.Media
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

func (m *Media) toResponse(rec *models.Media) mediaResponse {
	out := mediaResponse{Media: *rec, URL: m.storage.FileURL(rec.S3Key)}
	if rec.ThumbS3Key != nil {
		out.ThumbURL = m.storage.FileURL(*rec.ThumbS3Key)
	}
	return out
}

// Upload accepts a multipart file, stores it in object storage under a
// random key, generates a thumbnail for raster images, and records the
// metadata.
func (m *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		respondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	key := "media/" + uuid.NewString() + filepath.Ext(header.Filename)
	if err := m.storage.Upload(r.Context(), key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("storage upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	var thumbKey *string
	if imaging.Thumbnailable(contentType) {
		thumb, err := imaging.Thumbnail(data, thumbWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", key)
		} else {
			tk := key + ".thumb.jpg"
			if err := m.storage.Upload(r.Context(), tk, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	rec, err := m.mediaStore.Create(&models.Media{
		S3Key:       key,
		ThumbS3Key:  thumbKey,
		Filename:    header.Filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	})
	if err != nil {
		slog.Error("store media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	slog.Info("media uploaded", "id", rec.ID, "key", key, "size", rec.SizeBytes)
	respondJSON(w, http.StatusCreated, m.toResponse(rec))
}

// List returns the media library, newest first.
func (m *Media) List(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	limit, offset := parseLimitOffset(r, 100, 500)
	items, err := m.mediaStore.List(limit, offset)
	if err != nil {
		slog.Error("list media failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load media")
		return
	}

	out := make([]mediaResponse, 0, len(items))
	for i := range items {
		out = append(out, m.toResponse(&items[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Delete removes a media record and its objects from storage.
func (m *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if m.storage == nil {
		respondError(w, http.StatusServiceUnavailable, "Media storage is not configured")
		return
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid media id")
		return
	}

	rec, err := m.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("find media failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}
	if rec == nil {
		respondError(w, http.StatusNotFound, "Media not found")
		return
	}

	if err := m.storage.Delete(r.Context(), rec.S3Key); err != nil {
		slog.Warn("storage delete failed", "error", err, "key", rec.S3Key)
	}
	if rec.ThumbS3Key != nil {
		if err := m.storage.Delete(r.Context(), *rec.ThumbS3Key); err != nil {
			slog.Warn("storage delete failed", "error", err, "key", *rec.ThumbS3Key)
		}
	}

	if _, err := m.mediaStore.Delete(id); err != nil {
		slog.Error("delete media failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}

	respondMessage(w, fmt.Sprintf("Deleted %s", rec.Filename))
}
