package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"kayakbay-backend/internal/storage"
)

// UploadsHandler serves images stored by the local-filesystem backend. The
// Cloudinary backend serves from its own CDN and never hits these routes.
type UploadsHandler struct {
	store storage.ImageStore
}

func NewUploadsHandler(store storage.ImageStore) *UploadsHandler {
	return &UploadsHandler{store: store}
}

func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := filepath.Join(vars["folder"], vars["file"])

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
