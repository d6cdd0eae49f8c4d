package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taeyeong15/marketing-backend/internal/middleware"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/service"
)

type CustomerGroupController struct {
	GroupService *service.CustomerGroupService
}

type customerGroupInput struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Criteria       model.GroupCriteria `json:"criteria"`
	EstimatedCount int                 `json:"estimated_count"`
}

func (c *CustomerGroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body customerGroupInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	g := &model.CustomerGroup{
		Name:           body.Name,
		Description:    body.Description,
		Criteria:       body.Criteria,
		EstimatedCount: body.EstimatedCount,
		CreatedDept:    middleware.UserDept(r),
	}
	if err := c.GroupService.Create(g, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, g)
}

func (c *CustomerGroupController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid group id"})
		return
	}

	var body customerGroupInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	g := &model.CustomerGroup{
		ID:             id,
		Name:           body.Name,
		Description:    body.Description,
		Criteria:       body.Criteria,
		EstimatedCount: body.EstimatedCount,
	}
	if err := c.GroupService.Update(g, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}

	updated, err := c.GroupService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (c *CustomerGroupController) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid group id"})
		return
	}

	g, err := c.GroupService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, g)
}

func (c *CustomerGroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	items, pagination, err := c.GroupService.List(listParams(r), filterParam(r, "status"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}

// SetGroupStatus toggles activation. Blocked deactivations come back as 409
// with details.activeCampaigns so the UI can show what is in the way.
func (c *CustomerGroupController) SetGroupStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid group id"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	g, err := c.GroupService.SetStatus(id, body.Status, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, g)
}

// CheckDeactivation is the read-only guard query used by the edit screen.
func (c *CustomerGroupController) CheckDeactivation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid group id"})
		return
	}

	check, err := c.GroupService.CanDeactivate(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, check)
}
