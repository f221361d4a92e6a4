// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/traversal"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each connection to :memory: is its own database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.DialectSQLite,
		IPHashSalt:     "test-ip-salt",
		RequiredPolicy: traversal.RequireCurrentSection,
		LogFormat:      "text",
	}
}

// InsertSurvey writes a survey tree exactly as given
func InsertSurvey(t *testing.T, conn *sql.DB, s *models.Survey) {
	t.Helper()

	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := conn.Exec(query, args...); err != nil {
			t.Fatalf("Failed to insert survey %s: %v", s.ID, err)
		}
	}

	exec(`INSERT INTO surveys (id, title, description, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.Title, s.Description, time.Now().UTC())
	for _, sec := range s.Sections {
		exec(`INSERT INTO sections (id, survey_id, title, description, ordering) VALUES (?, ?, ?, ?, ?)`,
			sec.ID, s.ID, sec.Title, sec.Description, sec.Ordering)
		for _, q := range sec.Questions {
			exec(`INSERT INTO questions (id, section_id, text, type, required, ordering) VALUES (?, ?, ?, ?, ?, ?)`,
				q.ID, sec.ID, q.Text, string(q.Type), q.Required, q.Ordering)
			for _, o := range q.Options {
				var value *string
				if o.Value != "" {
					value = &o.Value
				}
				exec(`INSERT INTO options (id, question_id, text, value, ordering) VALUES (?, ?, ?, ?, ?)`,
					o.ID, q.ID, o.Text, value, o.Ordering)
			}
		}
	}
}

// InsertForm writes a form with its fields in declared order
func InsertForm(t *testing.T, conn *sql.DB, f *models.Form) {
	t.Helper()

	fields, err := json.Marshal(f.Fields)
	if err != nil {
		t.Fatalf("Failed to encode form fields: %v", err)
	}
	_, err = conn.Exec(`INSERT INTO forms (id, title, fields, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.Title, string(fields), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert form %s: %v", f.ID, err)
	}
}

// SampleSurvey is a two-section survey. Sections and questions are listed
// out of order so callers can check sorting.
func SampleSurvey() *models.Survey {
	return &models.Survey{
		ID:          "s1",
		Title:       "Travel",
		Description: "A short travel survey",
		Sections: []models.Section{
			{
				ID: "sec2", Title: "Habits", Ordering: 2,
				Questions: []models.Question{
					{ID: "q3", Text: "Where else?", Type: models.QuestionCheckbox, Ordering: 2, Options: []models.Option{
						{ID: "o5", Text: "Rome", Ordering: 2},
						{ID: "o4", Text: "Oslo", Ordering: 1},
					}},
					{ID: "q2", Text: "Do you travel?", Type: models.QuestionRadio, Required: true, Ordering: 1, Options: []models.Option{
						{ID: "o1", Text: "Yes", Value: "yes", Ordering: 1},
						{ID: "o2", Text: "No", Value: "no", Ordering: 2},
					}},
				},
			},
			{
				ID: "sec1", Title: "Basics", Ordering: 1,
				Questions: []models.Question{
					{ID: "q1", Text: "Favorite city?", Type: models.QuestionText, Required: true, Ordering: 1},
				},
			},
		},
	}
}

// SampleForm is a contact form with two fields
func SampleForm() *models.Form {
	fields := orderedmap.New[string, models.Field]()
	fields.Set("name", models.Field{Label: "Name", Type: "text"})
	fields.Set("email", models.Field{Label: "Email", Type: "email"})
	return &models.Form{ID: "f1", Title: "Contact", Fields: fields}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
