// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package traversal

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-survey/models"
)

// RequiredPolicy decides when required questions are enforced.
type RequiredPolicy int

const (
	// RequireCurrentSection checks the displayed section on every Next,
	// the same way a browser validates a native form.
	RequireCurrentSection RequiredPolicy = iota
	// RequireNone never blocks navigation or submission.
	RequireNone
	// RequireAllSections also re-checks every section before submitting.
	RequireAllSections
)

func (p RequiredPolicy) String() string {
	switch p {
	case RequireNone:
		return "none"
	case RequireAllSections:
		return "all"
	default:
		return "current"
	}
}

// ParsePolicy reads a policy name. Empty means the default.
func ParsePolicy(s string) (RequiredPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current", "native":
		return RequireCurrentSection, nil
	case "none":
		return RequireNone, nil
	case "all":
		return RequireAllSections, nil
	default:
		return RequireCurrentSection, fmt.Errorf("invalid required policy %q (use current, none or all)", s)
	}
}

// missingRequired lists required questions in sec without an answer.
// Questions of unknown type render nothing and are never required.
func missingRequired(sec models.Section, answers models.AnswerSet) []string {
	var missing []string
	for _, q := range sec.Questions {
		if !q.Required || !q.Type.Valid() {
			continue
		}
		if a, ok := answers[q.ID]; !ok || a.IsEmpty() {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

type options struct {
	policy RequiredPolicy
}

// Option configures a Controller or FormSession.
type Option func(*options)

func WithPolicy(p RequiredPolicy) Option {
	return func(o *options) { o.policy = p }
}

func buildOptions(opts []Option) options {
	o := options{policy: RequireCurrentSection}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
