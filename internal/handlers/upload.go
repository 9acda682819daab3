package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vas_import/internal/config/connections/s3"
	"vas_import/internal/ports"
	"vas_import/internal/services/importer"
	"vas_import/internal/transport/auth"

	"github.com/minio/minio-go/v7"
)

// uploadKind picks the pipeline for an uploaded file. An explicit form value
// wins; otherwise the filename decides, the same way the batch sweep routes.
func uploadKind(form, filename string) string {
	if k := strings.ToLower(strings.TrimSpace(form)); k != "" {
		return k
	}
	if importer.IsParkingFilename(filename) {
		return "parking"
	}
	return "vas"
}

// Upload accepts multipart/form-data with a `file` field, stores the file in
// S3 under uploads/ and starts the matching pipeline on it in the background.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	// CORS preflight support for simple usage from frontend apps
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use POST"})
		return
	}

	if err := r.ParseMultipartForm(128 << 20); err != nil {
		h.Logger.Printf("[UPLOAD][ERR] parse multipart: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad multipart: " + err.Error()})
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] missing file: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "file is required"})
		return
	}
	defer f.Close()

	kind := uploadKind(r.FormValue("kind"), fh.Filename)

	key := s3.UploadKey(fh.Filename)

	size := fh.Size
	if size <= 0 {
		size = -1
	}

	_, err = h.S3.Client.PutObject(context.Background(), h.S3.Bucket, key, f, size,
		minio.PutObjectOptions{ContentType: fh.Header.Get("Content-Type")})
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] s3 put: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to store file: " + err.Error()})
		return
	}

	s3path := fmt.Sprintf("s3://%s/%s", h.S3.Bucket, key)
	userID, _ := auth.GetUserID(r.Context())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		if userID != "" {
			ctx = context.WithValue(ctx, ports.CtxUserID, userID)
		}

		var err error
		if kind == "parking" {
			_, err = h.Importer.ProcessParkingFile(ctx, s3path)
		} else {
			_, err = h.Importer.ProcessVasFile(ctx, s3path)
		}
		if err != nil {
			h.Logger.Printf("[UPLOAD][ERR][BG] kind=%q path=%q err=%v", kind, s3path, err)
		}
	}()

	w.Header().Set("Access-Control-Allow-Origin", "*")
	h.JSON(w, http.StatusAccepted, map[string]any{"status": "started", "path": s3path})
}

// UploadStatement accepts the monthly postpaid CSV statement as
// multipart/form-data and imports it synchronously: the statement is small
// and the caller wants the per-row outcome.
func (h *Handlers) UploadStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "use POST"})
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.Logger.Printf("[STATEMENT][ERR] parse multipart: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "bad multipart: " + err.Error()})
		return
	}

	f, _, err := r.FormFile("file")
	if err != nil {
		h.JSON(w, http.StatusBadRequest, map[string]any{"error": "file is required"})
		return
	}
	defer f.Close()

	ctx := r.Context()
	if userID, err := auth.GetUserID(ctx); err == nil {
		ctx = context.WithValue(ctx, ports.CtxUserID, userID)
	}

	res, err := h.Importer.ImportPostpaidStatement(ctx, f)
	if err != nil {
		h.Logger.Printf("[STATEMENT][ERR] %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	h.JSON(w, http.StatusOK, res)
}
