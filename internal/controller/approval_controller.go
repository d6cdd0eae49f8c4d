package controller

import (
	"encoding/json"
	"net/http"

	"github.com/taeyeong15/marketing-backend/internal/middleware"
	"github.com/taeyeong15/marketing-backend/internal/service"
)

type ApprovalController struct {
	ApprovalService *service.ApprovalService
}

// RequestApproval submits a campaign into a new approval cycle.
func (c *ApprovalController) RequestApproval(w http.ResponseWriter, r *http.Request) {
	var body service.ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}
	if body.RequesterID == "" {
		body.RequesterID = middleware.UserID(r)
	}

	pa, err := c.ApprovalService.SubmitForApproval(body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, pa)
}

func (c *ApprovalController) ListPending(w http.ResponseWriter, r *http.Request) {
	items, pagination, err := c.ApprovalService.ListPending(
		listParams(r),
		filterParam(r, "priority"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}

// ResolveApproval approves or rejects one pending request. Resolution is
// terminal; a second call conflicts.
func (c *ApprovalController) ResolveApproval(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID              int    `json:"id"`
		Status          string `json:"status"`
		ApproverID      string `json:"approver_id"`
		ApprovalComment string `json:"approval_comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}
	if body.ApproverID == "" {
		body.ApproverID = middleware.UserID(r)
	}

	pa, err := c.ApprovalService.Resolve(body.ID, body.Status, body.ApproverID, body.ApprovalComment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, pa)
}
