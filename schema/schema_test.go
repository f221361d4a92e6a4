// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-survey/models"
)

const unsortedSurvey = `{
  "id": "s1",
  "title": "Travel",
  "description": "A short survey",
  "sections": [
    {"id": "sec-b", "title": "Second", "ordering": 2, "questions": [
      {"id": "q3", "text": "Pick", "type": "radio", "required": false, "ordering": 1, "options": [
        {"id": "o2", "text": "No", "ordering": 2},
        {"id": "o1", "text": "Yes", "ordering": 1}
      ]}
    ]},
    {"id": "sec-a", "title": "First", "ordering": 1, "questions": [
      {"id": "q2", "text": "Second question", "type": "text", "ordering": 5},
      {"id": "q1", "text": "First question", "type": "text", "required": true, "ordering": 1}
    ]}
  ]
}`

func sectionIDs(s *models.Survey) []string {
	ids := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		ids[i] = sec.ID
	}
	return ids
}

func TestParseSurveySortsChildren(t *testing.T) {
	s, err := ParseSurvey([]byte(unsortedSurvey))
	require.NoError(t, err)

	assert.Equal(t, []string{"sec-a", "sec-b"}, sectionIDs(s))
	assert.Equal(t, "q1", s.Sections[0].Questions[0].ID)
	assert.Equal(t, "q2", s.Sections[0].Questions[1].ID)
	assert.Equal(t, "o1", s.Sections[1].Questions[0].Options[0].ID)
	assert.True(t, s.Sections[0].Questions[0].Required)
	assert.Equal(t, "A short survey", s.Description)

	// Non-choice questions still carry an empty option list
	assert.NotNil(t, s.Sections[0].Questions[0].Options)
}

func TestSortSurveyIsIdempotent(t *testing.T) {
	s, err := ParseSurvey([]byte(unsortedSurvey))
	require.NoError(t, err)

	before := *s
	before.Sections = append([]models.Section(nil), s.Sections...)
	SortSurvey(s)

	if diff := cmp.Diff(before, *s); diff != "" {
		t.Errorf("sorting a sorted survey changed it (-before +after):\n%s", diff)
	}
}

func TestSortSurveyStableOnTies(t *testing.T) {
	s := &models.Survey{
		ID:    "s",
		Title: "Ties",
		Sections: []models.Section{
			{ID: "x", Ordering: 1},
			{ID: "y", Ordering: 0},
			{ID: "z", Ordering: 1},
			{ID: "w", Ordering: 0},
		},
	}
	SortSurvey(s)
	assert.Equal(t, []string{"y", "w", "x", "z"}, sectionIDs(s))
}

func TestParseSurveyErrors(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		notFound bool
	}{
		{"empty", "", true},
		{"null", "null", true},
		{"invalid json", "{", false},
		{"missing title", `{"id":"s1"}`, false},
		{"question without type", `{"id":"s1","title":"T","sections":[{"id":"a","title":"A","questions":[{"id":"q","text":"Q"}]}]}`, false},
		{"option without id", `{"id":"s1","title":"T","sections":[{"id":"a","title":"A","questions":[{"id":"q","text":"Q","type":"radio","options":[{"text":"x"}]}]}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSurvey([]byte(tt.payload))
			require.Error(t, err)

			if tt.notFound {
				assert.True(t, errors.Is(err, models.ErrNotFound), "expected not found, got %v", err)
				return
			}
			var serr *models.SchemaError
			assert.True(t, errors.As(err, &serr), "expected schema error, got %v", err)
		})
	}
}

func TestParseSurveyKeepsUnknownTypes(t *testing.T) {
	s, err := ParseSurvey([]byte(`{"id":"s1","title":"T","sections":[{"id":"a","title":"A","questions":[{"id":"q","text":"Q","type":"slider"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, models.QuestionType("slider"), s.Sections[0].Questions[0].Type)
}

func TestParseFormKeepsFieldOrder(t *testing.T) {
	f, err := ParseForm([]byte(`{"id":"f1","title":"Contact","fields":{
		"zeta":{"label":"Zeta","type":"text"},
		"alpha":{"label":"Alpha","type":"email"},
		"mid":{"label":"Mid"}
	}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, f.FieldNames())

	mid, ok := f.Fields.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "text", mid.Type)
}

func TestParseFormErrors(t *testing.T) {
	_, err := ParseForm([]byte("null"))
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = ParseForm([]byte(`{"id":"f1","title":"No fields"}`))
	var serr *models.SchemaError
	assert.True(t, errors.As(err, &serr))
}

func TestReservedNamesRejected(t *testing.T) {
	_, err := ParseSurvey([]byte(`{"id":"s1","title":"T","sections":[
		{"id":"sec1","title":"One","ordering":1,"questions":[
			{"id":"_answers","text":"Clash","type":"text","ordering":1}
		]}
	]}`))
	var serr *models.SchemaError
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Contains(t, serr.Reason, "_answers")

	_, err = ParseForm([]byte(`{"id":"f1","title":"T","fields":{"name":{"label":"Name"},"_section":{"label":"Clash"}}}`))
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Contains(t, serr.Reason, "_section")
}
