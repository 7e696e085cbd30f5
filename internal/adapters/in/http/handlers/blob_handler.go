// internal/adapters/in/http/handlers/blob_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Madman-dev/ZZin/internal/adapters/out/memory"
)

// BlobHandler serves objects of the in-memory blob store under /blobs/*.
// Only mounted when the memory backend is active.
type BlobHandler struct {
	store *memory.BlobStore
}

func NewBlobHandler(store *memory.BlobStore) *BlobHandler {
	return &BlobHandler{store: store}
}

// GET /blobs/*
func (h *BlobHandler) Get(w http.ResponseWriter, r *http.Request) {
	obj, ok := h.store.Object(chi.URLParam(r, "*"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	ct := obj.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}
