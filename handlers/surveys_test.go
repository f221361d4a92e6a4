// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/models"
	tu "github.com/danielhkuo/quickly-survey/testutil"
)

func TestGetSurvey(t *testing.T) {
	_, gw := seededGateway(t)
	handler := NewSurveyHandler(gw, tu.GetTestConfig(), metrics.New())

	t.Run("children sorted by ordering", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/survey/s1", nil)
		req.SetPathValue("surveyId", "s1")
		w := httptest.NewRecorder()
		handler.GetSurvey(w, req)

		tu.AssertStatus(t, w, http.StatusOK)

		var survey models.Survey
		tu.AssertJSON(t, w, &survey)

		if len(survey.Sections) != 2 {
			t.Fatalf("Expected 2 sections, got %d", len(survey.Sections))
		}
		if survey.Sections[0].ID != "sec1" || survey.Sections[1].ID != "sec2" {
			t.Errorf("Expected sections sec1, sec2; got %s, %s", survey.Sections[0].ID, survey.Sections[1].ID)
		}

		habits := survey.Sections[1]
		if habits.Questions[0].ID != "q2" || habits.Questions[1].ID != "q3" {
			t.Errorf("Expected questions q2, q3; got %s, %s", habits.Questions[0].ID, habits.Questions[1].ID)
		}
		opts := habits.Questions[1].Options
		if opts[0].Text != "Oslo" || opts[1].Text != "Rome" {
			t.Errorf("Expected options Oslo, Rome; got %s, %s", opts[0].Text, opts[1].Text)
		}
		if !habits.Questions[0].Required {
			t.Error("Expected q2 to be required")
		}
	})

	t.Run("missing survey", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/survey/unknown", nil)
		req.SetPathValue("surveyId", "unknown")
		w := httptest.NewRecorder()
		handler.GetSurvey(w, req)

		tu.AssertStatus(t, w, http.StatusNotFound)
		if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Survey not found"}` {
			t.Errorf("Unexpected body %s", got)
		}
	})

	t.Run("read failure", func(t *testing.T) {
		h := NewSurveyHandler(&stubGateway{readErr: errors.New("connection reset")}, tu.GetTestConfig(), metrics.New())
		req := httptest.NewRequest("GET", "/api/survey/s1", nil)
		req.SetPathValue("surveyId", "s1")
		w := httptest.NewRecorder()
		h.GetSurvey(w, req)

		tu.AssertStatus(t, w, http.StatusInternalServerError)
		assertErrorBody(t, w, "Internal server error")
	})
}

func TestSubmitSurvey(t *testing.T) {
	conn, gw := seededGateway(t)
	handler := NewSurveyHandler(gw, tu.GetTestConfig(), metrics.New())

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing responses",
			body:           `{"surveyId":"s1"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "surveyId and responses are required",
		},
		{
			name:           "missing survey id",
			body:           `{"responses":{"q1":"Paris"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "surveyId and responses are required",
		},
		{
			name:           "object answer",
			body:           `{"surveyId":"s1","responses":{"q1":{"city":"Paris"}}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid JSON",
		},
		{
			name:           "set for a single-value question",
			body:           `{"surveyId":"s1","responses":{"q1":["Paris","Rome"]}}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "question q1: question of type text takes a single value",
		},
		{
			name:           "unknown survey",
			body:           `{"surveyId":"nope","responses":{"q1":"Paris"}}`,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Error saving response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/submit-survey", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.SubmitSurvey(w, req)

			tu.AssertStatus(t, w, tt.expectedStatus)
			assertErrorBody(t, w, tt.expectedError)
		})
	}

	if got := storedResponses(t, conn, "survey_id", "s1"); len(got) != 0 {
		t.Errorf("Rejected submissions must not be stored, found %d", len(got))
	}
}

func TestSubmitSurveyStoresEnrichedAnswers(t *testing.T) {
	conn, gw := seededGateway(t)
	m := metrics.New()
	handler := NewSurveyHandler(gw, tu.GetTestConfig(), m)

	body := `{"surveyId":"s1","responses":{"q1":"Paris","q2":"yes","q3":"Oslo","q9":"??"}}`
	req := httptest.NewRequest("POST", "/api/submit-survey", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.SubmitSurvey(w, req)

	tu.AssertStatus(t, w, http.StatusCreated)
	if got := strings.TrimSpace(w.Body.String()); got != `{"success":true}` {
		t.Errorf("Unexpected body %s", got)
	}

	stored := storedResponses(t, conn, "survey_id", "s1")
	if len(stored) != 1 {
		t.Fatalf("Expected 1 stored response, got %d", len(stored))
	}

	var data models.EnrichedAnswerSet
	if err := json.Unmarshal([]byte(stored[0]), &data); err != nil {
		t.Fatalf("Stored data is not an enriched answer set: %v", err)
	}

	if q1 := data["q1"]; q1.QuestionText != "Favorite city?" || q1.QuestionType != models.QuestionText || q1.Answer.Value() != "Paris" {
		t.Errorf("Unexpected q1 %+v", q1)
	}
	if q2 := data["q2"]; q2.QuestionType != models.QuestionRadio || q2.Answer.Value() != "yes" {
		t.Errorf("Unexpected q2 %+v", q2)
	}
	// Checkbox answers are always stored as sets
	if q3 := data["q3"]; !q3.Answer.IsMulti() || !slices.Equal(q3.Answer.Values(), []string{"Oslo"}) {
		t.Errorf("Unexpected q3 %+v", q3)
	}
	if q9 := data["q9"]; q9.QuestionText != models.MissingQuestionText || q9.QuestionType != models.MissingQuestionType {
		t.Errorf("Expected placeholders for unknown question, got %+v", q9)
	}
}

func TestSubmitSurveyStoreFailures(t *testing.T) {
	tests := []struct {
		name          string
		gw            *stubGateway
		expectedError string
		expectWrite   bool
	}{
		{
			name:          "question lookup fails",
			gw:            &stubGateway{readErr: &models.ReadError{Op: "questions", Err: errors.New("timeout")}},
			expectedError: "Error fetching question data",
		},
		{
			name:          "insert fails",
			gw:            &stubGateway{writeErr: &models.WriteError{Op: "survey response", Err: errors.New("disk full")}},
			expectedError: "Error saving response",
			expectWrite:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewSurveyHandler(tt.gw, tu.GetTestConfig(), metrics.New())

			req := tu.MakeRequest("POST", "/api/submit-survey", models.SubmitSurveyRequest{
				SurveyID:  "s1",
				Responses: models.AnswerSet{"q1": models.Scalar("Paris")},
			}, nil)
			w := httptest.NewRecorder()
			handler.SubmitSurvey(w, req)

			tu.AssertStatus(t, w, http.StatusInternalServerError)
			assertErrorBody(t, w, tt.expectedError)
			if got := tt.gw.writes == 1; got != tt.expectWrite {
				t.Errorf("Expected write attempted = %v, got %d writes", tt.expectWrite, tt.gw.writes)
			}
		})
	}
}
