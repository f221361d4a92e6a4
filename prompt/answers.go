// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompt

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/render"
	"github.com/danielhkuo/quickly-survey/traversal"
)

// LoadAnswers reads a YAML mapping of question ids (or field names) to
// answers. A scalar is a single value, a sequence of scalars is a set:
//
//	q1: Paris
//	q2: "yes"
//	q3: [Oslo, Rome]
func LoadAnswers(path string) (models.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes the LoadAnswers format. Scalars keep their literal
// text, so 1.50 stays "1.50".
func ParseAnswers(data []byte) (models.AnswerSet, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}

	out := make(models.AnswerSet, len(raw))
	for key, node := range raw {
		switch node.Kind {
		case yaml.ScalarNode:
			if node.Tag == "!!null" {
				return nil, fmt.Errorf("answer %s: null is not a valid answer", key)
			}
			out[key] = models.Scalar(node.Value)
		case yaml.SequenceNode:
			values := make([]string, 0, len(node.Content))
			for _, item := range node.Content {
				if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
					return nil, fmt.Errorf("answer %s: set members must be plain values", key)
				}
				values = append(values, item.Value)
			}
			out[key] = models.Set(values...)
		default:
			return nil, fmt.Errorf("answer %s: must be a value or a list of values", key)
		}
	}
	return out, nil
}

// AutofillSurvey answers every section from answers and advances until the
// survey is submitted. Keys that name no question in the survey are
// rejected before anything is sent.
func AutofillSurvey(ctx context.Context, ctrl *traversal.Controller, answers models.AnswerSet) error {
	if st := ctrl.State(); st != traversal.StateInProgress {
		return fmt.Errorf("%w: survey is %s", traversal.ErrNotReady, st)
	}

	known := surveyLabels(ctrl)
	for _, key := range answers.Keys() {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("%w: %s", traversal.ErrUnknownQuestion, key)
		}
	}

	for {
		for _, w := range ctrl.Widgets() {
			a, ok := answers[w.Name]
			if !ok {
				continue
			}
			if err := applyAnswer(ctrl, w, a); err != nil {
				return err
			}
		}

		outcome, err := ctrl.Next(ctx)
		if err != nil {
			return err
		}
		if outcome == traversal.OutcomeSubmitted {
			return nil
		}
	}
}

func applyAnswer(ctrl *traversal.Controller, w render.Widget, a models.Answer) error {
	if w.Kind != render.KindCheckbox {
		if a.IsMulti() {
			return fmt.Errorf("%w: %s takes a single value", traversal.ErrWrongKind, w.Name)
		}
		return ctrl.Answer(w.Name, a.Value())
	}

	if err := ctrl.Clear(w.Name); err != nil {
		return err
	}
	for _, v := range a.Values() {
		if err := ctrl.Toggle(w.Name, v, true); err != nil {
			return err
		}
	}
	return nil
}

// AutofillForm sets every field from answers and submits once.
func AutofillForm(ctx context.Context, s *traversal.FormSession, answers models.AnswerSet) error {
	for _, key := range answers.Keys() {
		a := answers[key]
		if a.IsMulti() {
			return fmt.Errorf("%w: %s takes a single value", traversal.ErrWrongKind, key)
		}
		if err := s.Set(key, a.Value()); err != nil {
			return err
		}
	}
	return s.Submit(ctx)
}
