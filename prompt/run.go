// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-survey/render"
	"github.com/danielhkuo/quickly-survey/traversal"
)

// Navigation choices offered after each section
const (
	actionNext     = "Next"
	actionSubmit   = "Submit"
	actionPrevious = "Previous"
	skipOption     = "(no answer)"
)

// RunSurvey walks the user through a loaded survey until it is submitted.
// Required questions left empty repeat the section. A failed submission
// asks whether to try again.
func RunSurvey(ctx context.Context, ctrl *traversal.Controller, d Driver) error {
	if st := ctrl.State(); st != traversal.StateInProgress {
		if err := ctrl.LastError(); err != nil {
			return err
		}
		return fmt.Errorf("%w: survey is %s", traversal.ErrNotReady, st)
	}

	if survey := ctrl.Survey(); survey != nil {
		if err := d.Info(ctx, survey.Title); err != nil {
			return err
		}
	}

	for ctrl.State() == traversal.StateInProgress {
		sec, _ := ctrl.Section()
		header := fmt.Sprintf("[%d/%d] %s", ctrl.Index()+1, ctrl.Total(), sec.Title)
		if err := d.Info(ctx, header); err != nil {
			return err
		}

		for _, c := range ctrl.Controls() {
			if err := askQuestion(ctx, ctrl, d, c); err != nil {
				return err
			}
		}

		if ctrl.Index() > 0 {
			forward := actionNext
			if ctrl.Index() == ctrl.Total()-1 {
				forward = actionSubmit
			}
			choice, err := d.Select(ctx, SelectConfig{
				Message: "Continue?",
				Options: []string{forward, actionPrevious},
			})
			if err != nil {
				return err
			}
			if choice == 1 {
				if err := ctrl.Previous(); err != nil {
					return err
				}
				continue
			}
		}

		outcome, err := nextWithRetry(ctx, ctrl, d)
		if err != nil {
			return err
		}
		if outcome == traversal.OutcomeSubmitted {
			return d.Info(ctx, "Thank you! Your response has been recorded.")
		}
	}
	return nil
}

// nextWithRetry calls Next. Required errors are reported and return
// OutcomeNone so the section repeats.
func nextWithRetry(ctx context.Context, ctrl *traversal.Controller, d Driver) (traversal.Outcome, error) {
	for {
		outcome, err := ctrl.Next(ctx)
		if err == nil {
			return outcome, nil
		}

		var re *traversal.RequiredError
		if errors.As(err, &re) {
			if err := d.Info(ctx, requiredMessage(re, surveyLabels(ctrl))); err != nil {
				return traversal.OutcomeNone, err
			}
			// Go back to the section with the gap
			for ctrl.Index() > re.SectionIndex {
				if err := ctrl.Previous(); err != nil {
					return traversal.OutcomeNone, err
				}
			}
			return traversal.OutcomeNone, nil
		}

		var se *traversal.SubmitError
		if !errors.As(err, &se) {
			return traversal.OutcomeNone, err
		}
		retry, cerr := askRetry(ctx, d, se)
		if cerr != nil {
			return traversal.OutcomeNone, cerr
		}
		if !retry {
			return traversal.OutcomeNone, err
		}
	}
}

func askRetry(ctx context.Context, d Driver, se *traversal.SubmitError) (bool, error) {
	if err := d.Info(ctx, fmt.Sprintf("Error saving response: %v", se.Err)); err != nil {
		return false, err
	}
	return d.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
}

func askQuestion(ctx context.Context, ctrl *traversal.Controller, d Driver, c render.Control) error {
	label := c.Label
	if c.Required {
		label += " *"
	}

	switch c.Kind {
	case render.KindInput:
		v, err := d.Input(ctx, InputConfig{Message: label, Default: c.Value, InputType: c.InputType, Required: c.Required})
		if err != nil {
			return err
		}
		return ctrl.Answer(c.Name, strings.TrimSpace(v))

	case render.KindTextarea:
		v, err := d.TextArea(ctx, TextAreaConfig{Message: label, Default: c.Value, Required: c.Required})
		if err != nil {
			return err
		}
		return ctrl.Answer(c.Name, strings.TrimSpace(v))

	case render.KindRadio, render.KindDropdown:
		options := choiceLabels(c.Choices)
		def := -1
		for i, ch := range c.Choices {
			if c.IsSelected(ch.Value) {
				def = i
			}
		}
		if !c.Required {
			options = append(options, skipOption)
		}
		i, err := d.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: def})
		if err != nil {
			return err
		}
		if i < 0 || i >= len(c.Choices) {
			return ctrl.Answer(c.Name, "")
		}
		return ctrl.Answer(c.Name, c.Choices[i].Value)

	case render.KindCheckbox:
		var defaults []int
		for i, ch := range c.Choices {
			if c.IsSelected(ch.Value) {
				defaults = append(defaults, i)
			}
		}
		picked, err := d.MultiSelect(ctx, SelectConfig{Message: label, Options: choiceLabels(c.Choices), Defaults: defaults})
		if err != nil {
			return err
		}
		if err := ctrl.Clear(c.Name); err != nil {
			return err
		}
		for _, i := range picked {
			if i < 0 || i >= len(c.Choices) {
				continue
			}
			if err := ctrl.Toggle(c.Name, c.Choices[i].Value, true); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunForm collects every field of a loaded form and submits it.
func RunForm(ctx context.Context, s *traversal.FormSession, d Driver) error {
	if st := s.State(); st != traversal.StateInProgress {
		if err := s.LastError(); err != nil {
			return err
		}
		return fmt.Errorf("%w: form is %s", traversal.ErrNotReady, st)
	}
	if form := s.Form(); form != nil {
		if err := d.Info(ctx, form.Title); err != nil {
			return err
		}
	}

	for {
		controls := s.Controls()
		for _, c := range controls {
			v, err := d.Input(ctx, InputConfig{Message: c.Label, Default: c.Value, InputType: c.InputType, Required: c.Required})
			if err != nil {
				return err
			}
			if err := s.Set(c.Name, strings.TrimSpace(v)); err != nil {
				return err
			}
		}

		err := s.Submit(ctx)
		if err == nil {
			return d.Info(ctx, "Thank you! Your response has been recorded.")
		}

		var re *traversal.RequiredError
		if errors.As(err, &re) {
			if err := d.Info(ctx, requiredMessage(re, controlLabels(controls))); err != nil {
				return err
			}
			continue
		}

		var se *traversal.SubmitError
		if !errors.As(err, &se) {
			return err
		}
		for {
			retry, cerr := askRetry(ctx, d, se)
			if cerr != nil {
				return cerr
			}
			if !retry {
				return err
			}
			if err = s.Submit(ctx); err == nil {
				return d.Info(ctx, "Thank you! Your response has been recorded.")
			}
			if !errors.As(err, &se) {
				return err
			}
		}
	}
}

func surveyLabels(ctrl *traversal.Controller) map[string]string {
	labels := map[string]string{}
	if survey := ctrl.Survey(); survey != nil {
		for _, sec := range survey.Sections {
			for _, q := range sec.Questions {
				labels[q.ID] = q.Text
			}
		}
	}
	return labels
}

func controlLabels(controls []render.Control) map[string]string {
	labels := make(map[string]string, len(controls))
	for _, c := range controls {
		labels[c.Name] = c.Label
	}
	return labels
}

// requiredMessage names the missing questions by label
func requiredMessage(re *traversal.RequiredError, labels map[string]string) string {
	names := make([]string, 0, len(re.QuestionIDs))
	for _, id := range re.QuestionIDs {
		if l := labels[id]; l != "" {
			names = append(names, l)
		} else {
			names = append(names, id)
		}
	}
	return "Please answer all required questions: " + strings.Join(names, ", ")
}

func choiceLabels(choices []render.Choice) []string {
	out := make([]string, len(choices))
	for i, ch := range choices {
		out[i] = ch.Label
	}
	return out
}
