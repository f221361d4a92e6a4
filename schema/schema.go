// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/danielhkuo/quickly-survey/models"
)

var (
	surveySchema = mustSchema(surveySchemaJSON)
	formSchema   = mustSchema(formSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("schema: invalid embedded JSON schema: %v", err))
	}
	return s
}

// ParseSurvey decodes a nested survey payload, validates it and sorts every
// child collection by ordering key.
func ParseSurvey(data []byte) (*models.Survey, error) {
	if isAbsent(data) {
		return nil, &models.NotFoundError{Entity: "Survey"}
	}
	if err := validatePayload(surveySchema, "survey", data); err != nil {
		return nil, err
	}

	var survey models.Survey
	if err := json.Unmarshal(data, &survey); err != nil {
		return nil, &models.SchemaError{Entity: "survey", Reason: err.Error()}
	}
	if err := ValidateSurvey(&survey); err != nil {
		return nil, err
	}
	SortSurvey(&survey)
	return &survey, nil
}

// ParseForm decodes a form payload, keeping the declared field order.
func ParseForm(data []byte) (*models.Form, error) {
	if isAbsent(data) {
		return nil, &models.NotFoundError{Entity: "Form"}
	}
	if err := validatePayload(formSchema, "form", data); err != nil {
		return nil, err
	}

	var form models.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, &models.SchemaError{Entity: "form", Reason: err.Error()}
	}
	if err := ValidateForm(&form); err != nil {
		return nil, err
	}
	return &form, nil
}

func isAbsent(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func validatePayload(s *gojsonschema.Schema, entity string, data []byte) error {
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &models.SchemaError{Entity: entity, Reason: err.Error()}
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return &models.SchemaError{Entity: entity, Reason: strings.Join(msgs, "; ")}
	}
	return nil
}

// ReservedPrefix starts the names the HTML pages use for their own hidden
// fields. Question ids and form field names may not use it.
const ReservedPrefix = "_"

// ValidateSurvey checks required attributes on an already decoded survey and
// replaces nil child collections with empty ones.
func ValidateSurvey(s *models.Survey) error {
	if s.ID == "" {
		return &models.SchemaError{Entity: "survey", Reason: "missing id"}
	}
	if s.Title == "" {
		return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: "missing title"}
	}
	if s.Sections == nil {
		s.Sections = []models.Section{}
	}
	for i := range s.Sections {
		sec := &s.Sections[i]
		if sec.ID == "" {
			return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: fmt.Sprintf("section %d: missing id", i)}
		}
		if sec.Questions == nil {
			sec.Questions = []models.Question{}
		}
		for j := range sec.Questions {
			q := &sec.Questions[j]
			if q.ID == "" {
				return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: fmt.Sprintf("section %s question %d: missing id", sec.ID, j)}
			}
			if strings.HasPrefix(q.ID, ReservedPrefix) {
				return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: fmt.Sprintf("question %s: ids may not start with %q", q.ID, ReservedPrefix)}
			}
			if q.Type == "" {
				return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: fmt.Sprintf("question %s: missing type", q.ID)}
			}
			if q.Options == nil {
				q.Options = []models.Option{}
			}
			for k := range q.Options {
				if q.Options[k].ID == "" {
					return &models.SchemaError{Entity: "survey", ID: s.ID, Reason: fmt.Sprintf("question %s option %d: missing id", q.ID, k)}
				}
			}
		}
	}
	return nil
}

// ValidateForm checks required attributes on a decoded form. Fields without
// a declared type default to text inputs.
func ValidateForm(f *models.Form) error {
	if f.ID == "" {
		return &models.SchemaError{Entity: "form", Reason: "missing id"}
	}
	if f.Fields == nil {
		return &models.SchemaError{Entity: "form", ID: f.ID, Reason: "missing fields"}
	}
	for pair := f.Fields.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			return &models.SchemaError{Entity: "form", ID: f.ID, Reason: "empty field name"}
		}
		if strings.HasPrefix(pair.Key, ReservedPrefix) {
			return &models.SchemaError{Entity: "form", ID: f.ID, Reason: fmt.Sprintf("field %s: names may not start with %q", pair.Key, ReservedPrefix)}
		}
		if pair.Value.Type == "" {
			field := pair.Value
			field.Type = string(models.QuestionText)
			f.Fields.Set(pair.Key, field)
		}
	}
	return nil
}

// SortSurvey orders sections, questions and options by ascending ordering
// key. The sort is stable, so ties keep their fetched order, and sorting an
// already sorted survey leaves it unchanged.
func SortSurvey(s *models.Survey) {
	slices.SortStableFunc(s.Sections, func(a, b models.Section) int {
		return cmp.Compare(a.Ordering, b.Ordering)
	})
	for i := range s.Sections {
		qs := s.Sections[i].Questions
		slices.SortStableFunc(qs, func(a, b models.Question) int {
			return cmp.Compare(a.Ordering, b.Ordering)
		})
		for j := range qs {
			slices.SortStableFunc(qs[j].Options, func(a, b models.Option) int {
				return cmp.Compare(a.Ordering, b.Ordering)
			})
		}
	}
}
