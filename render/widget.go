// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"github.com/danielhkuo/quickly-survey/models"
)

// Kind is the input control a question or field renders as.
type Kind string

const (
	KindInput    Kind = "input"
	KindTextarea Kind = "textarea"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	KindDropdown Kind = "dropdown"
	// KindNone renders nothing. Used for unrecognised question types.
	KindNone Kind = "none"
)

type Choice struct {
	Label string
	Value string
}

// Widget describes one rendered input.
type Widget struct {
	Kind      Kind
	Name      string
	Label     string
	InputType string // for KindInput: text, number, date, email
	Required  bool
	Choices   []Choice
}

// ForQuestion maps a survey question to its widget.
func ForQuestion(q models.Question) Widget {
	w := Widget{
		Name:     q.ID,
		Label:    q.Text,
		Required: q.Required,
	}

	switch q.Type {
	case models.QuestionText, models.QuestionNumber, models.QuestionDate, models.QuestionEmail:
		w.Kind = KindInput
		w.InputType = string(q.Type)
	case models.QuestionTextarea:
		w.Kind = KindTextarea
	case models.QuestionRadio:
		w.Kind = KindRadio
	case models.QuestionCheckbox:
		w.Kind = KindCheckbox
	case models.QuestionDropdown:
		w.Kind = KindDropdown
	default:
		w.Kind = KindNone
		return w
	}

	if q.Type.IsChoice() {
		w.Choices = make([]Choice, 0, len(q.Options))
		for _, opt := range q.Options {
			w.Choices = append(w.Choices, Choice{Label: opt.Text, Value: opt.EffectiveValue()})
		}
	}
	return w
}

// ForField maps a form field to a required text-like input.
func ForField(name string, f models.Field) Widget {
	inputType := f.Type
	if inputType == "" {
		inputType = "text"
	}
	return Widget{
		Kind:      KindInput,
		Name:      name,
		Label:     f.Label,
		InputType: inputType,
		Required:  true,
	}
}

// ForSection returns the widgets of a section in question order,
// skipping questions that render nothing.
func ForSection(sec models.Section) []Widget {
	out := make([]Widget, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		w := ForQuestion(q)
		if w.Kind == KindNone {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ForForm returns the widgets of a form in declared field order.
func ForForm(form *models.Form) []Widget {
	if form == nil || form.Fields == nil {
		return nil
	}
	out := make([]Widget, 0, form.Fields.Len())
	for pair := form.Fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, ForField(pair.Key, pair.Value))
	}
	return out
}

// Control is a widget bound to the current answer.
type Control struct {
	Widget
	Value    string
	Selected map[string]bool
}

// IsSelected reports whether a choice is part of the current answer.
func (c Control) IsSelected(value string) bool {
	return c.Selected[value]
}

// Bind attaches the current answers to widgets for display.
func Bind(widgets []Widget, answers models.AnswerSet) []Control {
	out := make([]Control, 0, len(widgets))
	for _, w := range widgets {
		c := Control{Widget: w, Selected: map[string]bool{}}
		if a, ok := answers[w.Name]; ok {
			c.Value = a.Value()
			for _, v := range a.Values() {
				c.Selected[v] = true
			}
		}
		out = append(out, c)
	}
	return out
}
