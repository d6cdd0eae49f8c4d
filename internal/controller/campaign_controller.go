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

type CampaignController struct {
	CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body service.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	campaign, err := c.CampaignService.Create(body, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, campaign)
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid campaign id"})
		return
	}

	var body service.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	campaign, err := c.CampaignService.Update(id, body, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, campaign)
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid campaign id"})
		return
	}

	details, err := c.CampaignService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, details)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	items, pagination, err := c.CampaignService.List(
		listParams(r),
		filterParam(r, "status"),
		filterParam(r, "type"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid campaign id"})
		return
	}

	if err := c.CampaignService.Delete(id, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"id": id})
}

// SetCampaignStatus drives the operational transitions (schedule, start,
// pause, complete) that are not part of the approval cycle.
func (c *CampaignController) SetCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid campaign id"})
		return
	}

	var body struct {
		Status model.CampaignStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	campaign, err := c.CampaignService.SetStatus(id, body.Status, middleware.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, campaign)
}
