// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

// seededGateway returns a SQLite gateway holding the sample survey and form
func seededGateway(t *testing.T) (*sql.DB, *gateway.SQLGateway) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	testutil.InsertSurvey(t, conn, testutil.SampleSurvey())
	testutil.InsertForm(t, conn, testutil.SampleForm())
	return conn, gateway.NewSQLGateway(conn, db.DialectSQLite)
}

// stubGateway fails on demand and counts writes. Methods it does not
// override panic through the nil embedded interface.
type stubGateway struct {
	gateway.Gateway
	readErr  error
	writeErr error
	writes   int
}

func (s *stubGateway) GetForm(ctx context.Context, formID string) (*models.Form, error) {
	return nil, s.readErr
}

func (s *stubGateway) GetSurvey(ctx context.Context, surveyID string) (*models.Survey, error) {
	return nil, s.readErr
}

func (s *stubGateway) GetQuestionsByIDs(ctx context.Context, ids []string) (map[string]models.QuestionMeta, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return map[string]models.QuestionMeta{}, nil
}

func (s *stubGateway) InsertFormResponse(ctx context.Context, formID string, data models.AnswerSet, meta models.ResponseMeta) (*models.Response, error) {
	s.writes++
	return nil, s.writeErr
}

func (s *stubGateway) InsertSurveyResponse(ctx context.Context, surveyID string, data models.EnrichedAnswerSet, meta models.ResponseMeta) (*models.Response, error) {
	s.writes++
	return nil, s.writeErr
}

// storedResponses returns the data column of every stored response for id
func storedResponses(t *testing.T, conn *sql.DB, column, id string) []string {
	t.Helper()
	rows, err := conn.Query("SELECT data FROM survey_responses WHERE "+column+" = ?", id)
	if err != nil {
		t.Fatalf("Failed to query responses: %v", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			t.Fatalf("Failed to scan response: %v", err)
		}
		out = append(out, data)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read responses: %v", err)
	}
	return out
}

func assertErrorBody(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	if resp.Error != want {
		t.Errorf("Expected error %q, got %q", want, resp.Error)
	}
}
