// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package enrich

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/quickly-survey/models"
)

// Store is the part of the gateway used for enrichment.
type Store interface {
	GetQuestionsByIDs(ctx context.Context, ids []string) (map[string]models.QuestionMeta, error)
	InsertSurveyResponse(ctx context.Context, surveyID string, data models.EnrichedAnswerSet, meta models.ResponseMeta) (*models.Response, error)
}

// Enricher joins submitted answers with question metadata.
type Enricher struct {
	store   Store
	missing prometheus.Counter
}

type Option func(*Enricher)

// WithMissingCounter counts answers whose question could not be found.
func WithMissingCounter(c prometheus.Counter) Option {
	return func(e *Enricher) { e.missing = c }
}

func New(store Store, opts ...Option) *Enricher {
	e := &Enricher{store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich looks up every answered question in one batch and returns
// self-describing answers. Unknown questions get placeholder text and type.
func (e *Enricher) Enrich(ctx context.Context, answers models.AnswerSet) (models.EnrichedAnswerSet, error) {
	ids := answers.Keys()
	metas, err := e.store.GetQuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(models.EnrichedAnswerSet, len(answers))
	for _, id := range ids {
		meta, ok := metas[id]
		if !ok && e.missing != nil {
			e.missing.Inc()
		}
		enriched, err := models.NewEnrichedAnswer(meta.Text, meta.Type, answers[id])
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", id, err)
		}
		out[id] = enriched
	}
	return out, nil
}

// Submit enriches the answers and stores them as a survey response.
func (e *Enricher) Submit(ctx context.Context, surveyID string, answers models.AnswerSet, meta models.ResponseMeta) (*models.Response, error) {
	enriched, err := e.Enrich(ctx, answers)
	if err != nil {
		return nil, err
	}
	return e.store.InsertSurveyResponse(ctx, surveyID, enriched, meta)
}
