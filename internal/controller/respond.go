package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/logx"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

func writeList(w http.ResponseWriter, items interface{}, p model.Pagination) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"items":      items,
		"pagination": p,
	})
}

// writeError maps the error taxonomy onto HTTP statuses: validation 400,
// not-found 404, state conflict 409, anything else a generic 500. Internal
// error text is logged, never sent to the caller.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		body := map[string]interface{}{"success": false, "error": validationErr.Message}
		if validationErr.Details != nil {
			body["details"] = validationErr.Details
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   notFoundErr.Error(),
		})
	case errors.As(err, &conflictErr):
		body := map[string]interface{}{"success": false, "error": conflictErr.Message}
		if conflictErr.Details != nil {
			body["details"] = conflictErr.Details
		}
		writeJSON(w, http.StatusConflict, body)
	default:
		logx.L().Errorw("unexpected error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "internal server error",
		})
	}
}

// listParams parses the shared page/limit/search query parameters.
func listParams(r *http.Request) model.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return model.ListParams{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
	}
}

// filterParam normalizes an enum filter: "all" (or empty) means no filter.
func filterParam(r *http.Request, name string) string {
	v := r.URL.Query().Get(name)
	if v == "all" {
		return ""
	}
	return v
}
