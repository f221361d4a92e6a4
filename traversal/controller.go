// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/render"
	"github.com/danielhkuo/quickly-survey/schema"
)

// Loader fetches a survey definition.
type Loader interface {
	LoadSurvey(ctx context.Context, id string) (*models.Survey, error)
}

// Submitter sends the collected answers.
type Submitter interface {
	SubmitSurvey(ctx context.Context, id string, answers models.AnswerSet) error
}

// Controller walks a user through a survey one section at a time.
// It is safe for concurrent use.
type Controller struct {
	loader    Loader
	submitter Submitter
	opts      options

	mu         sync.Mutex
	state      State
	surveyID   string
	survey     *models.Survey
	index      int
	answers    models.AnswerSet
	lastErr    error
	loads      loads
	submitting bool
}

func New(loader Loader, submitter Submitter, opts ...Option) *Controller {
	return &Controller{
		loader:    loader,
		submitter: submitter,
		opts:      buildOptions(opts),
		state:     StateLoadingID,
		answers:   models.AnswerSet{},
	}
}

// Restore rebuilds an in-progress controller from a loaded survey, a section
// index and previously collected answers. Answers are validated the same way
// as Answer and Toggle.
func Restore(survey *models.Survey, index int, answers models.AnswerSet, submitter Submitter, opts ...Option) (*Controller, error) {
	if survey == nil || len(survey.Sections) == 0 {
		id := ""
		if survey != nil {
			id = survey.ID
		}
		return nil, &models.SchemaError{Entity: "survey", ID: id, Reason: "survey has no sections"}
	}
	if index < 0 || index >= len(survey.Sections) {
		return nil, fmt.Errorf("section index %d out of range [0, %d)", index, len(survey.Sections))
	}
	schema.SortSurvey(survey)

	c := New(nil, submitter, opts...)
	c.state = StateInProgress
	c.surveyID = survey.ID
	c.survey = survey
	c.index = index

	for _, qid := range answers.Keys() {
		if err := c.restoreAnswer(qid, answers[qid]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller) restoreAnswer(qid string, a models.Answer) error {
	q, err := c.question(qid)
	if err != nil {
		return err
	}
	if q.Type.IsMulti() {
		a = a.AsSet()
	} else if a.IsMulti() {
		return fmt.Errorf("%w: %s", ErrWrongKind, qid)
	}
	if q.Type.IsChoice() {
		for _, v := range a.Values() {
			if !q.HasOption(v) {
				return fmt.Errorf("%w: %s=%q", ErrInvalidChoice, qid, v)
			}
		}
	}
	c.answers[qid] = a
	return nil
}

// Resolve sets the survey to load and moves to the loading-schema state.
// An in-flight load for a previous id is cancelled and its result discarded.
func (c *Controller) Resolve(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitted {
		return ErrSubmitted
	}
	if c.submitting {
		return ErrBusy
	}
	if id == "" {
		return ErrMissingID
	}

	c.loads.abort()
	c.surveyID = id
	c.survey = nil
	c.index = 0
	c.answers = models.AnswerSet{}
	c.lastErr = nil
	c.state = StateLoadingSchema
	return nil
}

// Load fetches the resolved survey and starts at the first section.
// Returns ErrStale when a newer Resolve or Load superseded this call.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateLoadingSchema {
		c.mu.Unlock()
		return fmt.Errorf("%w: state is %s", ErrNotReady, c.state)
	}
	if c.loader == nil {
		c.mu.Unlock()
		return ErrNoLoader
	}
	loadCtx, gen := c.loads.begin(ctx)
	id := c.surveyID
	c.mu.Unlock()

	survey, err := c.loader.LoadSurvey(loadCtx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loads.finish(gen) {
		return ErrStale
	}
	if err == nil && (survey == nil || len(survey.Sections) == 0) {
		err = &models.SchemaError{Entity: "survey", ID: id, Reason: "survey has no sections"}
	}
	if err != nil {
		c.state = StateNotFound
		c.lastErr = err
		return err
	}

	schema.SortSurvey(survey)
	c.survey = survey
	c.index = 0
	c.state = StateInProgress
	return nil
}

func (c *Controller) editable() error {
	switch {
	case c.state == StateSubmitted:
		return ErrSubmitted
	case c.state != StateInProgress:
		return fmt.Errorf("%w: state is %s", ErrNotReady, c.state)
	case c.submitting:
		return ErrBusy
	}
	return nil
}

// question finds a question anywhere in the survey.
func (c *Controller) question(qid string) (models.Question, error) {
	for _, sec := range c.survey.Sections {
		for _, q := range sec.Questions {
			if q.ID == qid {
				return q, nil
			}
		}
	}
	return models.Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, qid)
}

// Answer records a single value. An empty value clears the answer.
func (c *Controller) Answer(qid, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	q, err := c.question(qid)
	if err != nil {
		return err
	}
	if q.Type.IsMulti() {
		return fmt.Errorf("%w: %s takes a set of values", ErrWrongKind, qid)
	}
	if value == "" {
		delete(c.answers, qid)
		return nil
	}
	if q.Type.IsChoice() && !q.HasOption(value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidChoice, qid, value)
	}
	c.answers[qid] = models.Scalar(value)
	return nil
}

// Toggle adds or removes value from a checkbox answer.
func (c *Controller) Toggle(qid, value string, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	q, err := c.question(qid)
	if err != nil {
		return err
	}
	if !q.Type.IsMulti() {
		return fmt.Errorf("%w: %s takes a single value", ErrWrongKind, qid)
	}
	if !q.HasOption(value) {
		return fmt.Errorf("%w: %s=%q", ErrInvalidChoice, qid, value)
	}

	current := c.answers[qid]
	if checked {
		c.answers[qid] = current.With(value)
	} else {
		c.answers[qid] = current.Without(value)
	}
	return nil
}

// Clear removes any answer for qid.
func (c *Controller) Clear(qid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	if _, err := c.question(qid); err != nil {
		return err
	}
	delete(c.answers, qid)
	return nil
}

func (c *Controller) checkSection(i int) error {
	sec := c.survey.Sections[i]
	if missing := missingRequired(sec, c.answers); len(missing) > 0 {
		return &RequiredError{SectionIndex: i, SectionTitle: sec.Title, QuestionIDs: missing}
	}
	return nil
}

// Next advances to the following section, or submits from the last one.
// A failed submission keeps the session on the last section with all
// answers intact; the error is returned and kept in LastError.
func (c *Controller) Next(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return OutcomeNone, err
	}

	if c.opts.policy != RequireNone {
		if err := c.checkSection(c.index); err != nil {
			c.lastErr = err
			c.mu.Unlock()
			return OutcomeNone, err
		}
	}

	if c.index < len(c.survey.Sections)-1 {
		c.index++
		c.lastErr = nil
		c.mu.Unlock()
		return OutcomeAdvanced, nil
	}

	if c.opts.policy == RequireAllSections {
		for i := range c.survey.Sections {
			if err := c.checkSection(i); err != nil {
				c.lastErr = err
				c.mu.Unlock()
				return OutcomeNone, err
			}
		}
	}
	if c.submitter == nil {
		c.mu.Unlock()
		return OutcomeNone, ErrNoSubmitter
	}

	c.submitting = true
	id := c.surveyID
	answers := c.answers.Clone()
	c.mu.Unlock()

	err := c.submitter.SubmitSurvey(ctx, id, answers)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.lastErr = &SubmitError{Err: err}
		return OutcomeNone, c.lastErr
	}

	c.state = StateSubmitted
	c.answers = models.AnswerSet{}
	c.lastErr = nil
	return OutcomeSubmitted, nil
}

// Previous moves back one section. Answers are kept.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}
	if c.index == 0 {
		return ErrFirstSection
	}
	c.index--
	c.lastErr = nil
	return nil
}

// Progress returns the completion percentage, (i+1)/N*100.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.state == StateSubmitted:
		return 100
	case c.survey == nil || len(c.survey.Sections) == 0:
		return 0
	}
	return float64(c.index+1) / float64(len(c.survey.Sections)) * 100
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SurveyID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surveyID
}

// Survey returns the loaded survey. Callers must not modify it.
func (c *Controller) Survey() *models.Survey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.survey
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.survey == nil {
		return 0
	}
	return len(c.survey.Sections)
}

// Section returns the current section.
func (c *Controller) Section() (models.Section, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInProgress {
		return models.Section{}, false
	}
	return c.survey.Sections[c.index], true
}

// Answers returns a copy of the collected answers.
func (c *Controller) Answers() models.AnswerSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answers.Clone()
}

// LastError is the most recent load, validation or submit failure.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Widgets returns the current section's widgets.
func (c *Controller) Widgets() []render.Widget {
	sec, ok := c.Section()
	if !ok {
		return nil
	}
	return render.ForSection(sec)
}

// Controls returns the current section's widgets bound to the answers.
func (c *Controller) Controls() []render.Control {
	return render.Bind(c.Widgets(), c.Answers())
}
