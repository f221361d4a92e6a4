// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/ident"
	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
)

type FormHandler struct {
	gw      gateway.Gateway
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewFormHandler(gw gateway.Gateway, cfg cliparse.Config, m *metrics.Metrics) *FormHandler {
	return &FormHandler{gw: gw, cfg: cfg, metrics: m}
}

// GetForm handles GET /api/form/{formId}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("formId")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "formId is required")
		return
	}

	form, err := h.gw.GetForm(r.Context(), formID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch form", "form_id", formID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error fetching form")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, form)
}

// SubmitForm handles POST /api/submit-form
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.FormID == "" || req.Data == nil {
		h.metrics.Submission("form", metrics.OutcomeInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "formId and data are required")
		return
	}

	meta := ident.NewResponseMeta(middleware.GetClientIP(r), r.UserAgent(), h.cfg.IPHashSalt)
	resp, err := h.gw.InsertFormResponse(r.Context(), req.FormID, req.Data, meta)
	if errors.Is(err, models.ErrNotFound) {
		h.metrics.Submission("form", metrics.OutcomeNotFound)
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to save form response", "form_id", req.FormID, "error", err)
		h.metrics.Submission("form", metrics.OutcomeFailed)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error saving response")
		return
	}

	h.metrics.Submission("form", metrics.OutcomeStored)
	slog.Info("form response saved", "form_id", req.FormID, "response_id", resp.ID)

	middleware.JSONResponse(w, http.StatusCreated, resp)
}
