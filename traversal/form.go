// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/render"
)

type FormLoader interface {
	LoadForm(ctx context.Context, id string) (*models.Form, error)
}

type FormSubmitter interface {
	SubmitForm(ctx context.Context, id string, data models.AnswerSet) error
}

// FormSession collects values for a flat form and submits them once.
type FormSession struct {
	loader    FormLoader
	submitter FormSubmitter
	opts      options

	mu         sync.Mutex
	state      State
	formID     string
	form       *models.Form
	data       models.AnswerSet
	lastErr    error
	loads      loads
	submitting bool
}

func NewFormSession(loader FormLoader, submitter FormSubmitter, opts ...Option) *FormSession {
	return &FormSession{
		loader:    loader,
		submitter: submitter,
		opts:      buildOptions(opts),
		state:     StateLoadingID,
		data:      models.AnswerSet{},
	}
}

// RestoreForm builds an editing session for an already loaded form.
func RestoreForm(form *models.Form, data models.AnswerSet, submitter FormSubmitter, opts ...Option) (*FormSession, error) {
	if form == nil {
		return nil, &models.SchemaError{Entity: "form", Reason: "form is missing"}
	}
	s := NewFormSession(nil, submitter, opts...)
	s.state = StateInProgress
	s.formID = form.ID
	s.form = form
	for _, name := range data.Keys() {
		if err := s.set(name, data[name].Value()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *FormSession) Resolve(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	if s.submitting {
		return ErrBusy
	}
	if id == "" {
		return ErrMissingID
	}

	s.loads.abort()
	s.formID = id
	s.form = nil
	s.data = models.AnswerSet{}
	s.lastErr = nil
	s.state = StateLoadingSchema
	return nil
}

func (s *FormSession) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoadingSchema {
		s.mu.Unlock()
		return fmt.Errorf("%w: state is %s", ErrNotReady, s.state)
	}
	if s.loader == nil {
		s.mu.Unlock()
		return ErrNoLoader
	}
	loadCtx, gen := s.loads.begin(ctx)
	id := s.formID
	s.mu.Unlock()

	form, err := s.loader.LoadForm(loadCtx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loads.finish(gen) {
		return ErrStale
	}
	if err == nil && form == nil {
		err = &models.NotFoundError{Entity: "Form", ID: id}
	}
	if err != nil {
		s.state = StateNotFound
		s.lastErr = err
		return err
	}

	s.form = form
	s.state = StateInProgress
	return nil
}

// Set records a field value. Last write wins.
func (s *FormSession) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateSubmitted:
		return ErrSubmitted
	case s.state != StateInProgress:
		return fmt.Errorf("%w: state is %s", ErrNotReady, s.state)
	case s.submitting:
		return ErrBusy
	}
	return s.set(name, value)
}

func (s *FormSession) set(name, value string) error {
	if s.form.Fields == nil {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, name)
	}
	if _, ok := s.form.Fields.Get(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, name)
	}
	s.data[name] = models.Scalar(value)
	return nil
}

// Submit sends the collected values. On failure the session stays editable
// and the error is kept in LastError.
func (s *FormSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.state == StateSubmitted:
		s.mu.Unlock()
		return ErrSubmitted
	case s.state != StateInProgress:
		s.mu.Unlock()
		return fmt.Errorf("%w: state is %s", ErrNotReady, s.state)
	case s.submitting:
		s.mu.Unlock()
		return ErrBusy
	case s.submitter == nil:
		s.mu.Unlock()
		return ErrNoSubmitter
	}

	if s.opts.policy != RequireNone {
		var missing []string
		for _, name := range s.form.FieldNames() {
			if a, ok := s.data[name]; !ok || a.IsEmpty() {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			err := &RequiredError{SectionTitle: s.form.Title, QuestionIDs: missing}
			s.lastErr = err
			s.mu.Unlock()
			return err
		}
	}

	s.submitting = true
	id := s.formID
	data := s.data.Clone()
	s.mu.Unlock()

	err := s.submitter.SubmitForm(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.lastErr = &SubmitError{Err: err}
		return s.lastErr
	}
	s.state = StateSubmitted
	s.data = models.AnswerSet{}
	s.lastErr = nil
	return nil
}

func (s *FormSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns the loaded form. Callers must not modify it.
func (s *FormSession) Form() *models.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *FormSession) Values() models.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

func (s *FormSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *FormSession) Widgets() []render.Widget {
	return render.ForForm(s.Form())
}

func (s *FormSession) Controls() []render.Control {
	return render.Bind(s.Widgets(), s.Values())
}
