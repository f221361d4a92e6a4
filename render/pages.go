// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// FormView is the data for the form page.
type FormView struct {
	Title    string
	FormID   string
	Controls []Control
	Error    string
}

// SurveyView is the data for one survey section page.
type SurveyView struct {
	Title              string
	Description        string
	SurveyID           string
	SectionTitle       string
	SectionDescription string
	Index              int
	Total              int
	Progress           int
	Controls           []Control
	AnswersJSON        string
	Error              string
}

func (v SurveyView) Number() int   { return v.Index + 1 }
func (v SurveyView) IsFirst() bool { return v.Index == 0 }
func (v SurveyView) IsLast() bool  { return v.Index == v.Total-1 }

// MessageView is a plain page: thank-you, not found, errors.
type MessageView struct {
	Title   string
	Message string
	Error   string
}

func Form(w io.Writer, v FormView) error {
	return pages.ExecuteTemplate(w, "form.html", v)
}

func Survey(w io.Writer, v SurveyView) error {
	return pages.ExecuteTemplate(w, "survey.html", v)
}

func Message(w io.Writer, v MessageView) error {
	return pages.ExecuteTemplate(w, "message.html", v)
}
