// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
	"github.com/danielhkuo/quickly-survey/traversal"
)

func TestLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	content := "q1: Paris\nq2: \"yes\"\nq3: [Oslo, Rome]\nprice: 1.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	answers, err := LoadAnswers(path)
	require.NoError(t, err)

	assert.Equal(t, "Paris", answers["q1"].Value())
	assert.Equal(t, "yes", answers["q2"].Value())
	assert.True(t, answers["q3"].IsMulti())
	assert.Equal(t, []string{"Oslo", "Rome"}, answers["q3"].Values())
	assert.Equal(t, "1.50", answers["price"].Value())
}

func TestParseAnswersErrors(t *testing.T) {
	tests := map[string]string{
		"null value":   "q1: null\n",
		"nested map":   "q1:\n  city: Paris\n",
		"nested list":  "q1: [[a]]\n",
		"not a map":    "- q1\n",
		"broken yaml":  "q1: [unclosed\n",
		"null in list": "q1: [a, ~]\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAnswers([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAnswersMissingFile(t *testing.T) {
	_, err := LoadAnswers(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAutofillSurvey(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := restoreSurvey(t, 0, nil, sub)

	answers := models.AnswerSet{
		"q1": models.Scalar("Paris"),
		"q2": models.Scalar("yes"),
		"q3": models.Scalar("Oslo"),
	}
	require.NoError(t, AutofillSurvey(context.Background(), ctrl, answers))

	assert.Equal(t, traversal.StateSubmitted, ctrl.State())
	assert.Equal(t, []string{"Oslo"}, sub.got["q3"].Values())
}

func TestAutofillSurveyErrors(t *testing.T) {
	tests := []struct {
		name    string
		answers models.AnswerSet
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unknown question",
			answers: models.AnswerSet{"q1": models.Scalar("Paris"), "q42": models.Scalar("x")},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, traversal.ErrUnknownQuestion) },
		},
		{
			name:    "invalid choice",
			answers: models.AnswerSet{"q1": models.Scalar("Paris"), "q2": models.Scalar("maybe")},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, traversal.ErrInvalidChoice) },
		},
		{
			name:    "set for a single value",
			answers: models.AnswerSet{"q1": models.Set("Paris", "Rome")},
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, traversal.ErrWrongKind) },
		},
		{
			name:    "required left out",
			answers: models.AnswerSet{"q1": models.Scalar("Paris")},
			check: func(t *testing.T, err error) {
				var re *traversal.RequiredError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, []string{"q2"}, re.QuestionIDs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &recordingSubmitter{}
			ctrl := restoreSurvey(t, 0, nil, sub)

			tt.check(t, AutofillSurvey(context.Background(), ctrl, tt.answers))
			assert.Zero(t, sub.calls, "nothing should be submitted")
		})
	}
}

func TestAutofillForm(t *testing.T) {
	sub := &recordingSubmitter{}
	s, err := traversal.RestoreForm(testutil.SampleForm(), nil, sub)
	require.NoError(t, err)

	err = AutofillForm(context.Background(), s, models.AnswerSet{
		"name":  models.Scalar("Ada"),
		"email": models.Scalar("ada@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", sub.got["name"].Value())

	s, _ = traversal.RestoreForm(testutil.SampleForm(), nil, sub)
	err = AutofillForm(context.Background(), s, models.AnswerSet{"phone": models.Scalar("555")})
	assert.ErrorIs(t, err, traversal.ErrUnknownQuestion)
}
