package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/taeyeong15/marketing-backend/internal/middleware"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/service"
)

type OfferController struct {
	OfferService *service.OfferService
}

type offerInput struct {
	Name           string                `json:"name"`
	Type           string                `json:"type"`
	Value          decimal.Decimal       `json:"value"`
	ValueType      string                `json:"value_type"`
	Status         string                `json:"status"`
	StartDate      *time.Time            `json:"start_date"`
	EndDate        *time.Time            `json:"end_date"`
	MaxUsage       int                   `json:"max_usage"`
	Conditions     model.OfferConditions `json:"conditions"`
	TargetProducts []string              `json:"target_products"`
}

func (in offerInput) toModel() *model.Offer {
	return &model.Offer{
		Name:           in.Name,
		Type:           in.Type,
		Value:          in.Value,
		ValueType:      in.ValueType,
		Status:         in.Status,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		MaxUsage:       in.MaxUsage,
		Conditions:     in.Conditions,
		TargetProducts: in.TargetProducts,
	}
}

func (c *OfferController) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var body offerInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	o := body.toModel()
	if err := c.OfferService.Create(o, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, o)
}

func (c *OfferController) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid offer id"})
		return
	}

	var body offerInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	o := body.toModel()
	o.ID = id
	if err := c.OfferService.Update(o, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}

	updated, err := c.OfferService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (c *OfferController) GetOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid offer id"})
		return
	}

	o, err := c.OfferService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, o)
}

func (c *OfferController) ListOffers(w http.ResponseWriter, r *http.Request) {
	items, pagination, err := c.OfferService.List(
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

// CheckDeletion is the read-only guard query used by the offer list screen.
func (c *OfferController) CheckDeletion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid offer id"})
		return
	}

	check, err := c.OfferService.CanDelete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, check)
}

// DeleteOffer refuses with 409 + details.activeCampaigns while a
// non-completed campaign still references the offer.
func (c *OfferController) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid offer id"})
		return
	}

	if err := c.OfferService.Delete(id, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"id": id})
}
