package handlers

import (
	"net/http"
	"strconv"

	"vas_import/internal/repository/auditlog"

	"go.mongodb.org/mongo-driver/bson"
)

// Activity lists recent audit entries, newest first. Filterable by
// entity_type and action, paged with limit/skip.
func (h *Handlers) Activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	filter := bson.M{}
	if v := r.URL.Query().Get("entity_type"); v != "" {
		filter["entity_type"] = v
	}
	if v := r.URL.Query().Get("action"); v != "" {
		filter["action"] = v
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)

	entries, total, err := auditlog.List(r.Context(), h.Mongo, filter, limit, skip)
	if err != nil {
		h.Logger.Printf("[ACTIVITY][ERR] %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"total":   total,
		"entries": entries,
	})
}
