// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/enrich"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/ident"
	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/schema"
)

type SurveyHandler struct {
	gw       gateway.Gateway
	enricher *enrich.Enricher
	cfg      cliparse.Config
	metrics  *metrics.Metrics
}

func NewSurveyHandler(gw gateway.Gateway, cfg cliparse.Config, m *metrics.Metrics) *SurveyHandler {
	return &SurveyHandler{
		gw:       gw,
		enricher: enrich.New(gw, enrich.WithMissingCounter(m.MissingQuestions)),
		cfg:      cfg,
		metrics:  m,
	}
}

// GetSurvey handles GET /api/survey/{surveyId}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	surveyID := r.PathValue("surveyId")
	if surveyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId is required")
		return
	}

	survey, err := h.gw.GetSurvey(r.Context(), surveyID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch survey", "survey_id", surveyID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Any Gateway implementation may return children unsorted
	schema.SortSurvey(survey)

	middleware.JSONResponse(w, http.StatusOK, survey)
}

// SubmitSurvey handles POST /api/submit-survey
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitSurveyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.SurveyID == "" || req.Responses == nil {
		h.metrics.Submission("survey", metrics.OutcomeInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, "surveyId and responses are required")
		return
	}

	meta := ident.NewResponseMeta(middleware.GetClientIP(r), r.UserAgent(), h.cfg.IPHashSalt)
	resp, err := h.enricher.Submit(r.Context(), req.SurveyID, req.Responses, meta)
	if err != nil {
		h.writeSubmitError(w, req.SurveyID, err)
		return
	}

	h.metrics.Submission("survey", metrics.OutcomeStored)
	slog.Info("survey response saved", "survey_id", req.SurveyID, "response_id", resp.ID, "answers", len(req.Responses))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitSurveyResponse{Success: true})
}

func (h *SurveyHandler) writeSubmitError(w http.ResponseWriter, surveyID string, err error) {
	var ve *models.ValidationError
	var re *models.ReadError
	switch {
	case errors.As(err, &ve):
		h.metrics.Submission("survey", metrics.OutcomeInvalid)
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &re):
		slog.Error("failed to fetch question data", "survey_id", surveyID, "error", err)
		h.metrics.Submission("survey", metrics.OutcomeFailed)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error fetching question data")
	default:
		slog.Error("failed to save survey response", "survey_id", surveyID, "error", err)
		h.metrics.Submission("survey", metrics.OutcomeFailed)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error saving response")
	}
}
