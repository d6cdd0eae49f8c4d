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

type ScriptController struct {
	ScriptService *service.ScriptService
}

type scriptInput struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

func (c *ScriptController) CreateScript(w http.ResponseWriter, r *http.Request) {
	var body scriptInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	sc := &model.Script{
		Name:    body.Name,
		Type:    body.Type,
		Status:  body.Status,
		Subject: body.Subject,
		Content: body.Content,
	}
	if err := c.ScriptService.Create(sc, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sc)
}

func (c *ScriptController) UpdateScript(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid script id"})
		return
	}

	var body scriptInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	sc := &model.Script{
		ID:      id,
		Name:    body.Name,
		Type:    body.Type,
		Status:  body.Status,
		Subject: body.Subject,
		Content: body.Content,
	}
	if err := c.ScriptService.Update(sc, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}

	updated, err := c.ScriptService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (c *ScriptController) GetScript(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid script id"})
		return
	}

	sc, err := c.ScriptService.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, sc)
}

func (c *ScriptController) ListScripts(w http.ResponseWriter, r *http.Request) {
	items, pagination, err := c.ScriptService.List(
		listParams(r),
		filterParam(r, "type"),
		filterParam(r, "status"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, pagination)
}

func (c *ScriptController) DeleteScript(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "invalid script id"})
		return
	}

	if err := c.ScriptService.Delete(id, middleware.UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"id": id})
}
