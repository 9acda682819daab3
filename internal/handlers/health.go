package handlers

import (
	"context"
	"net/http"
	"os"
	"time"
)

type healthResp struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []string
	if h.Cfg == nil {
		errs = append(errs, "config not initialized")
	} else {
		errs = h.Cfg.ConnectionErrors(ctx)
	}

	if h.Importer != nil && h.Importer.InputDir != "" {
		if _, err := os.Stat(h.Importer.InputDir); err != nil {
			errs = append(errs, "input dir unavailable: "+err.Error())
		}
	}

	code := http.StatusOK
	if len(errs) > 0 {
		code = http.StatusInternalServerError
	}
	h.JSON(w, code, healthResp{OK: len(errs) == 0, Errors: errs})
}
