package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"vas_import/internal/ports"
	"vas_import/internal/transport/auth"
)

type importRequest struct {
	Kind       string `json:"kind"`
	FilePath   string `json:"file_path"`
	TimeoutMin int    `json:"timeout_minutes,omitempty"`
}

// Import starts processing one report file in the background and returns 202
// immediately. kind selects the pipeline: "vas" (default) or "parking".
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	var req importRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		h.Logger.Printf("[IMPORT][REQ][ERR] bad JSON: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		h.Logger.Printf("[IMPORT][REQ][ERR] file_path is required")
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "file_path is required"})
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "" {
		kind = "vas"
	}
	if kind != "vas" && kind != "parking" {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be vas or parking"})
		return
	}

	userID, _ := auth.GetUserID(r.Context())
	reqCopy := req

	go func() {
		start := time.Now()

		timeout := 15 * time.Minute
		if reqCopy.TimeoutMin > 0 {
			timeout = time.Duration(reqCopy.TimeoutMin) * time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if userID != "" {
			ctx = context.WithValue(ctx, ports.CtxUserID, userID)
		}

		var err error
		if kind == "parking" {
			_, err = h.Importer.ProcessParkingFile(ctx, reqCopy.FilePath)
		} else {
			_, err = h.Importer.ProcessVasFile(ctx, reqCopy.FilePath)
		}
		if err != nil {
			h.Logger.Printf("[IMPORT][ERR][BG] kind=%q path=%q err=%v took=%s",
				kind, reqCopy.FilePath, err, time.Since(start))
			return
		}
		h.Logger.Printf("[IMPORT][OK][BG] kind=%q path=%q took=%s", kind, reqCopy.FilePath, time.Since(start))
	}()

	h.JSON(w, http.StatusAccepted, map[string]any{
		"status":    "started",
		"kind":      kind,
		"file_path": req.FilePath,
	})
}

// ImportBatch sweeps the configured input directory synchronously and
// returns the per-file results.
func (h *Handlers) ImportBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	ctx := r.Context()
	if userID, err := auth.GetUserID(ctx); err == nil {
		ctx = context.WithValue(ctx, ports.CtxUserID, userID)
	}

	res, err := h.Importer.RunBatch(ctx)
	if err != nil {
		h.Logger.Printf("[IMPORT][BATCH][ERR] %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.JSON(w, http.StatusOK, res)
}
