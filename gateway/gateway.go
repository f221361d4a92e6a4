// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"context"

	"github.com/danielhkuo/quickly-survey/models"
)

// Gateway is the persistence boundary. Every call is a single round trip
// and failures are returned immediately, never retried.
type Gateway interface {
	// GetForm returns the form or a *models.NotFoundError.
	GetForm(ctx context.Context, formID string) (*models.Form, error)

	// GetSurvey returns the survey with sections, questions and options
	// joined and sorted by ordering key, or a *models.NotFoundError.
	GetSurvey(ctx context.Context, surveyID string) (*models.Survey, error)

	// InsertFormResponse stores answers for an existing form.
	InsertFormResponse(ctx context.Context, formID string, data models.AnswerSet, meta models.ResponseMeta) (*models.Response, error)

	// InsertSurveyResponse stores enriched answers for a survey.
	InsertSurveyResponse(ctx context.Context, surveyID string, data models.EnrichedAnswerSet, meta models.ResponseMeta) (*models.Response, error)

	// GetQuestionsByIDs returns text and type for the questions that exist.
	// Unknown IDs are simply absent from the result.
	GetQuestionsByIDs(ctx context.Context, ids []string) (map[string]models.QuestionMeta, error)
}
