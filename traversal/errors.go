// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSubmitted       = errors.New("already submitted")
	ErrNotReady        = errors.New("not in progress")
	ErrMissingID       = errors.New("missing id")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidChoice   = errors.New("value is not one of the options")
	ErrWrongKind       = errors.New("answer kind does not match question type")
	ErrFirstSection    = errors.New("already at the first section")
	ErrNoSubmitter     = errors.New("no submitter configured")
	ErrNoLoader        = errors.New("no loader configured")
	ErrStale           = errors.New("load superseded")
	ErrBusy            = errors.New("submission in progress")
)

// RequiredError reports required questions left unanswered in a section.
type RequiredError struct {
	SectionIndex int
	SectionTitle string
	QuestionIDs  []string
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("%q has unanswered required questions: %s",
		e.SectionTitle, strings.Join(e.QuestionIDs, ", "))
}

// SubmitError wraps a failed submission. Answers are kept so the
// user can try again.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return "submit failed: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
