package controller

import (
	"net/http"
	"time"

	"github.com/taeyeong15/marketing-backend/internal/service"
)

type HistoryController struct {
	HistoryService *service.HistoryService
}

// ListHistory serves the audit log screen. Date bounds arrive as YYYY-MM-DD;
// the end of the range is inclusive of that whole day.
func (c *HistoryController) ListHistory(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time
	if v := r.URL.Query().Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid date_from"})
			return
		}
		from = &t
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid date_to"})
			return
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	items, pagination, err := c.HistoryService.List(
		listParams(r),
		filterParam(r, "action_type"),
		from, to,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}
