// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/enrich"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/ident"
	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/render"
	"github.com/danielhkuo/quickly-survey/traversal"
)

// Hidden fields carried between survey pages. Question ids never start with
// schema.ReservedPrefix, so they cannot collide with these.
const (
	fieldSection = "_section"
	fieldAnswers = "_answers"
	fieldAction  = "_action"
)

// PageHandler serves the HTML form and survey pages. It keeps no session
// state: the section index and answers so far travel in hidden fields.
type PageHandler struct {
	gw       gateway.Gateway
	enricher *enrich.Enricher
	cfg      cliparse.Config
	metrics  *metrics.Metrics
}

func NewPageHandler(gw gateway.Gateway, cfg cliparse.Config, m *metrics.Metrics) *PageHandler {
	return &PageHandler{
		gw:       gw,
		enricher: enrich.New(gw, enrich.WithMissingCounter(m.MissingQuestions)),
		cfg:      cfg,
		metrics:  m,
	}
}

// formSubmitter stores page submissions through the gateway
type formSubmitter struct {
	gw   gateway.Gateway
	meta models.ResponseMeta
}

func (s formSubmitter) SubmitForm(ctx context.Context, id string, data models.AnswerSet) error {
	_, err := s.gw.InsertFormResponse(ctx, id, data, s.meta)
	return err
}

// surveySubmitter enriches and stores page submissions
type surveySubmitter struct {
	enricher *enrich.Enricher
	meta     models.ResponseMeta
}

func (s surveySubmitter) SubmitSurvey(ctx context.Context, id string, answers models.AnswerSet) error {
	_, err := s.enricher.Submit(ctx, id, answers, s.meta)
	return err
}

// ShowForm handles GET /form/{formId}
func (h *PageHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}

	writePage(w, http.StatusOK, func(out io.Writer) error {
		return render.Form(out, render.FormView{
			Title:    form.Title,
			FormID:   form.ID,
			Controls: render.Bind(render.ForForm(form), nil),
		})
	})
}

// PostForm handles POST /form/{formId}
func (h *PageHandler) PostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request", "The submitted form could not be read.")
		return
	}
	form, ok := h.loadForm(w, r)
	if !ok {
		return
	}

	meta := ident.NewResponseMeta(middleware.GetClientIP(r), r.UserAgent(), h.cfg.IPHashSalt)
	session, err := traversal.RestoreForm(form, nil, formSubmitter{gw: h.gw, meta: meta},
		traversal.WithPolicy(h.cfg.RequiredPolicy))
	if err != nil {
		slog.Error("failed to start form session", "form_id", form.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong", "Error fetching form")
		return
	}

	for _, name := range form.FieldNames() {
		if v := strings.TrimSpace(r.PostForm.Get(name)); v != "" {
			// Field names come from the form itself, Set cannot reject them
			_ = session.Set(name, v)
		}
	}

	err = session.Submit(r.Context())
	if err == nil {
		h.metrics.Submission("form", metrics.OutcomeStored)
		slog.Info("form page submitted", "form_id", form.ID)
		writeMessage(w, http.StatusOK, "Thank you", "Your response has been recorded.")
		return
	}

	labels := map[string]string{}
	for pair := form.Fields.Oldest(); pair != nil; pair = pair.Next() {
		labels[pair.Key] = pair.Value.Label
	}
	status, message := h.submitFailure("form", form.ID, err, labels)
	writePage(w, status, func(out io.Writer) error {
		return render.Form(out, render.FormView{
			Title:    form.Title,
			FormID:   form.ID,
			Controls: session.Controls(),
			Error:    message,
		})
	})
}

// ShowSurvey handles GET /survey/{surveyId}
func (h *PageHandler) ShowSurvey(w http.ResponseWriter, r *http.Request) {
	survey, ok := h.loadSurvey(w, r)
	if !ok {
		return
	}

	ctrl, err := traversal.Restore(survey, 0, nil, nil, traversal.WithPolicy(h.cfg.RequiredPolicy))
	if err != nil {
		slog.Error("survey cannot be displayed", "survey_id", survey.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong", "This survey cannot be displayed.")
		return
	}

	h.writeSection(w, http.StatusOK, ctrl, "")
}

// PostSurvey handles POST /survey/{surveyId}
func (h *PageHandler) PostSurvey(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request", "The submitted form could not be read.")
		return
	}
	survey, ok := h.loadSurvey(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PostForm.Get(fieldSection))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request", "The survey page is out of date. Please start again.")
		return
	}
	answers := models.AnswerSet{}
	if raw := r.PostForm.Get(fieldAnswers); raw != "" {
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request", "The survey page is out of date. Please start again.")
			return
		}
	}

	meta := ident.NewResponseMeta(middleware.GetClientIP(r), r.UserAgent(), h.cfg.IPHashSalt)
	ctrl, err := traversal.Restore(survey, index, answers,
		surveySubmitter{enricher: h.enricher, meta: meta},
		traversal.WithPolicy(h.cfg.RequiredPolicy))
	if err != nil {
		slog.Warn("rejected survey page state", "survey_id", survey.ID, "error", err)
		writeMessage(w, http.StatusBadRequest, "Invalid request", "The survey page is out of date. Please start again.")
		return
	}

	if msg := applySection(ctrl, r); msg != "" {
		h.writeSection(w, http.StatusBadRequest, ctrl, msg)
		return
	}

	if r.PostForm.Get(fieldAction) == "previous" {
		// Already on the first section: stay there
		_ = ctrl.Previous()
		h.writeSection(w, http.StatusOK, ctrl, "")
		return
	}

	outcome, err := ctrl.Next(r.Context())
	if err != nil {
		labels := map[string]string{}
		for _, sec := range survey.Sections {
			for _, q := range sec.Questions {
				labels[q.ID] = q.Text
			}
		}
		status, message := h.submitFailure("survey", survey.ID, err, labels)
		h.writeSection(w, status, ctrl, message)
		return
	}
	if outcome == traversal.OutcomeSubmitted {
		h.metrics.Submission("survey", metrics.OutcomeStored)
		slog.Info("survey page submitted", "survey_id", survey.ID)
		writeMessage(w, http.StatusOK, "Thank you", "Your response has been recorded.")
		return
	}
	h.writeSection(w, http.StatusOK, ctrl, "")
}

// applySection copies the current section's inputs into the controller.
// It returns a message for the user when an input is rejected.
func applySection(ctrl *traversal.Controller, r *http.Request) string {
	for _, wdg := range ctrl.Widgets() {
		if wdg.Kind == render.KindCheckbox {
			if err := ctrl.Clear(wdg.Name); err != nil {
				return "Internal server error"
			}
			for _, v := range r.PostForm[wdg.Name] {
				if err := ctrl.Toggle(wdg.Name, v, true); err != nil {
					return "Please choose one of the listed options for " + wdg.Label
				}
			}
			continue
		}

		v := strings.TrimSpace(r.PostForm.Get(wdg.Name))
		if err := ctrl.Answer(wdg.Name, v); err != nil {
			return "Please choose one of the listed options for " + wdg.Label
		}
	}
	return ""
}

// submitFailure maps a Next or Submit error to a status and a message.
// labels maps question ids or field names to what the user sees.
func (h *PageHandler) submitFailure(kind, id string, err error, labels map[string]string) (int, string) {
	var re *traversal.RequiredError
	if errors.As(err, &re) {
		names := make([]string, 0, len(re.QuestionIDs))
		for _, qid := range re.QuestionIDs {
			if label := labels[qid]; label != "" {
				names = append(names, label)
			} else {
				names = append(names, qid)
			}
		}
		return http.StatusBadRequest, "Please answer all required questions: " + strings.Join(names, ", ")
	}

	status := middleware.StatusFor(err)
	switch status {
	case http.StatusBadRequest:
		h.metrics.Submission(kind, metrics.OutcomeInvalid)
		return status, err.Error()
	case http.StatusNotFound:
		h.metrics.Submission(kind, metrics.OutcomeNotFound)
		return status, "This " + kind + " no longer exists."
	default:
		slog.Error("page submission failed", "kind", kind, "id", id, "error", err)
		h.metrics.Submission(kind, metrics.OutcomeFailed)
		return status, "Error saving response. Your answers are kept, please try again."
	}
}

func (h *PageHandler) writeSection(w http.ResponseWriter, status int, ctrl *traversal.Controller, message string) {
	survey := ctrl.Survey()
	sec, _ := ctrl.Section()

	answersJSON, err := json.Marshal(ctrl.Answers())
	if err != nil {
		slog.Error("failed to encode answers", "survey_id", survey.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong", "Internal server error")
		return
	}

	writePage(w, status, func(out io.Writer) error {
		return render.Survey(out, render.SurveyView{
			Title:              survey.Title,
			Description:        survey.Description,
			SurveyID:           survey.ID,
			SectionTitle:       sec.Title,
			SectionDescription: sec.Description,
			Index:              ctrl.Index(),
			Total:              ctrl.Total(),
			Progress:           int(math.Round(ctrl.Progress())),
			Controls:           ctrl.Controls(),
			AnswersJSON:        string(answersJSON),
			Error:              message,
		})
	})
}

func (h *PageHandler) loadForm(w http.ResponseWriter, r *http.Request) (*models.Form, bool) {
	formID := r.PathValue("formId")
	form, err := h.gw.GetForm(r.Context(), formID)
	if errors.Is(err, models.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Not found", "Form not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to fetch form", "form_id", formID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong", "Error fetching form")
		return nil, false
	}
	return form, true
}

func (h *PageHandler) loadSurvey(w http.ResponseWriter, r *http.Request) (*models.Survey, bool) {
	surveyID := r.PathValue("surveyId")
	survey, err := h.gw.GetSurvey(r.Context(), surveyID)
	if errors.Is(err, models.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Not found", "Survey not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to fetch survey", "survey_id", surveyID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong", "Internal server error")
		return nil, false
	}
	return survey, true
}

func writeMessage(w http.ResponseWriter, status int, title, message string) {
	writePage(w, status, func(out io.Writer) error {
		return render.Message(out, render.MessageView{Title: title, Message: message})
	})
}

// writePage renders the whole page before writing the status line
func writePage(w http.ResponseWriter, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
