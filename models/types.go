package models

import (
	"encoding/json"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// QuestionType is the declared input kind of a survey question.
type QuestionType string

// Question type constants
const (
	QuestionText     QuestionType = "text"
	QuestionNumber   QuestionType = "number"
	QuestionDate     QuestionType = "date"
	QuestionEmail    QuestionType = "email"
	QuestionTextarea QuestionType = "textarea"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
	QuestionDropdown QuestionType = "dropdown"
)

// Sentinels stored when a submitted answer references a question whose
// metadata could not be found.
const (
	MissingQuestionText              = "Question text not found"
	MissingQuestionType QuestionType = "Type not found"
)

// Valid reports whether t is one of the declared question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionDate, QuestionEmail,
		QuestionTextarea, QuestionRadio, QuestionCheckbox, QuestionDropdown:
		return true
	}
	return false
}

// IsChoice reports whether answers must be picked from the question's options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionRadio || t == QuestionCheckbox || t == QuestionDropdown
}

// IsMulti reports whether the answer is a set of values.
func (t QuestionType) IsMulti() bool {
	return t == QuestionCheckbox
}

// Domain types

type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
}

type Section struct {
	ID          string     `json:"id"`
	SurveyID    string     `json:"survey_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Ordering    float64    `json:"ordering"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID        string       `json:"id"`
	SectionID string       `json:"section_id,omitempty"`
	Text      string       `json:"text"`
	Type      QuestionType `json:"type"`
	Required  bool         `json:"required"`
	Ordering  float64      `json:"ordering"`
	Options   []Option     `json:"options"`
}

// HasOption reports whether value matches the effective value of one of the
// question's options.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.EffectiveValue() == value {
			return true
		}
	}
	return false
}

type Option struct {
	ID         string  `json:"id"`
	QuestionID string  `json:"question_id,omitempty"`
	Text       string  `json:"text"`
	Value      string  `json:"value,omitempty"`
	Ordering   float64 `json:"ordering"`
}

// EffectiveValue is the value submitted for the option; it falls back to the
// display text when no distinct value is set.
func (o Option) EffectiveValue() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Text
}

// Field describes one input of a flat form.
type Field struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Form is the single-section variant. Fields keep their declared order.
type Form struct {
	ID     string                                `json:"id"`
	Title  string                                `json:"title"`
	Fields *orderedmap.OrderedMap[string, Field] `json:"fields"`
}

// FieldNames returns the form's field names in declared order.
func (f *Form) FieldNames() []string {
	if f.Fields == nil {
		return nil
	}
	names := make([]string, 0, f.Fields.Len())
	for pair := f.Fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// QuestionMeta is the subset of a question used to enrich submitted answers.
type QuestionMeta struct {
	Text string       `json:"text"`
	Type QuestionType `json:"type"`
}

// Response is a persisted submission. Immutable once stored.
type Response struct {
	ID        string          `json:"id"`
	SurveyID  string          `json:"survey_id,omitempty"`
	FormID    string          `json:"form_id,omitempty"`
	Data      json.RawMessage `json:"data"`
	IPHash    *string         `json:"-"` // Never expose in JSON
	UserAgent *string         `json:"-"` // Never expose in JSON
	CreatedAt time.Time       `json:"created_at"`
}

// ResponseMeta carries request metadata stored alongside a response.
type ResponseMeta struct {
	IPHash    string
	UserAgent string
}

// Request types

type SubmitFormRequest struct {
	FormID string    `json:"formId"`
	Data   AnswerSet `json:"data"`
}

type SubmitSurveyRequest struct {
	SurveyID  string    `json:"surveyId"`
	Responses AnswerSet `json:"responses"`
}

// Response types

type SubmitSurveyResponse struct {
	Success bool `json:"success"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
