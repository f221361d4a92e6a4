// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/ident"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/schema"
)

// SQLGateway implements Gateway on database/sql for Postgres or SQLite.
type SQLGateway struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
	newID   func() string
}

func NewSQLGateway(conn *sql.DB, dialect string) *SQLGateway {
	return &SQLGateway{
		db:      conn,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   ident.NewID,
	}
}

func (g *SQLGateway) q(query string) string {
	return db.Rebind(g.dialect, query)
}

// GetForm handles the forms lookup
func (g *SQLGateway) GetForm(ctx context.Context, formID string) (*models.Form, error) {
	var form models.Form
	var fieldsJSON []byte
	err := g.db.QueryRowContext(ctx, g.q(`
		SELECT id, title, fields
		FROM forms
		WHERE id = ?
	`), formID).Scan(&form.ID, &form.Title, &fieldsJSON)

	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "Form", ID: formID}
	}
	if err != nil {
		return nil, &models.ReadError{Op: "form", Err: err}
	}

	fields := orderedmap.New[string, models.Field]()
	if err := json.Unmarshal(fieldsJSON, fields); err != nil {
		return nil, &models.SchemaError{Entity: "form", ID: formID, Reason: "fields: " + err.Error()}
	}
	form.Fields = fields

	if err := schema.ValidateForm(&form); err != nil {
		return nil, err
	}
	return &form, nil
}

const surveyQuery = `
	SELECT s.id, s.title, s.description,
	       sec.id, sec.title, sec.description, sec.ordering,
	       q.id, q.text, q.type, q.required, q.ordering,
	       o.id, o.text, o.value, o.ordering
	FROM surveys s
	LEFT JOIN sections sec ON sec.survey_id = s.id
	LEFT JOIN questions q ON q.section_id = sec.id
	LEFT JOIN options o ON o.question_id = q.id
	WHERE s.id = ?
	ORDER BY sec.ordering, sec.id, q.ordering, q.id, o.ordering, o.id
`

// surveyRow is one row of the flattened survey join
type surveyRow struct {
	surveyID, surveyTitle string
	surveyDescription     sql.NullString

	sectionID, sectionTitle, sectionDescription sql.NullString
	sectionOrdering                             sql.NullFloat64

	questionID, questionText, questionType sql.NullString
	questionRequired                       sql.NullBool
	questionOrdering                       sql.NullFloat64

	optionID, optionText, optionValue sql.NullString
	optionOrdering                    sql.NullFloat64
}

// GetSurvey loads the whole survey tree in one query
func (g *SQLGateway) GetSurvey(ctx context.Context, surveyID string) (*models.Survey, error) {
	rows, err := g.db.QueryContext(ctx, g.q(surveyQuery), surveyID)
	if err != nil {
		return nil, &models.ReadError{Op: "survey", Err: err}
	}
	defer rows.Close()

	var survey *models.Survey
	sectionIdx := map[string]int{}
	questionIdx := map[string][2]int{}

	for rows.Next() {
		var r surveyRow
		if err := rows.Scan(
			&r.surveyID, &r.surveyTitle, &r.surveyDescription,
			&r.sectionID, &r.sectionTitle, &r.sectionDescription, &r.sectionOrdering,
			&r.questionID, &r.questionText, &r.questionType, &r.questionRequired, &r.questionOrdering,
			&r.optionID, &r.optionText, &r.optionValue, &r.optionOrdering,
		); err != nil {
			return nil, &models.ReadError{Op: "survey", Err: err}
		}

		if survey == nil {
			survey = &models.Survey{
				ID:          r.surveyID,
				Title:       r.surveyTitle,
				Description: r.surveyDescription.String,
				Sections:    []models.Section{},
			}
		}
		if !r.sectionID.Valid {
			continue
		}

		si, ok := sectionIdx[r.sectionID.String]
		if !ok {
			survey.Sections = append(survey.Sections, models.Section{
				ID:          r.sectionID.String,
				SurveyID:    survey.ID,
				Title:       r.sectionTitle.String,
				Description: r.sectionDescription.String,
				Ordering:    r.sectionOrdering.Float64,
				Questions:   []models.Question{},
			})
			si = len(survey.Sections) - 1
			sectionIdx[r.sectionID.String] = si
		}
		if !r.questionID.Valid {
			continue
		}

		pos, ok := questionIdx[r.questionID.String]
		if !ok {
			section := &survey.Sections[si]
			section.Questions = append(section.Questions, models.Question{
				ID:        r.questionID.String,
				SectionID: section.ID,
				Text:      r.questionText.String,
				Type:      models.QuestionType(r.questionType.String),
				Required:  r.questionRequired.Bool,
				Ordering:  r.questionOrdering.Float64,
				Options:   []models.Option{},
			})
			pos = [2]int{si, len(section.Questions) - 1}
			questionIdx[r.questionID.String] = pos
		}
		if !r.optionID.Valid {
			continue
		}

		question := &survey.Sections[pos[0]].Questions[pos[1]]
		question.Options = append(question.Options, models.Option{
			ID:         r.optionID.String,
			QuestionID: question.ID,
			Text:       r.optionText.String,
			Value:      r.optionValue.String,
			Ordering:   r.optionOrdering.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &models.ReadError{Op: "survey", Err: err}
	}

	if survey == nil {
		return nil, &models.NotFoundError{Entity: "Survey", ID: surveyID}
	}
	if err := schema.ValidateSurvey(survey); err != nil {
		return nil, err
	}
	schema.SortSurvey(survey)
	return survey, nil
}

// InsertFormResponse stores a form response. The insert only happens when
// the form exists, so a missing form costs no extra round trip.
func (g *SQLGateway) InsertFormResponse(ctx context.Context, formID string, data models.AnswerSet, meta models.ResponseMeta) (*models.Response, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, &models.WriteError{Op: "form response", Err: err}
	}

	resp := g.newResponse(payload, meta)
	resp.FormID = formID

	result, err := g.db.ExecContext(ctx, g.q(fmt.Sprintf(`
		INSERT INTO survey_responses (id, form_id, data, ip_hash, user_agent, created_at)
		SELECT ?, f.id, %s, ?, ?, %s
		FROM forms f
		WHERE f.id = ?
	`, db.TypedParam(g.dialect, "JSONB"), db.TypedParam(g.dialect, "TIMESTAMP"))), resp.ID, string(payload), resp.IPHash, resp.UserAgent, resp.CreatedAt, formID)
	if err != nil {
		return nil, &models.WriteError{Op: "form response", Err: err}
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, &models.WriteError{Op: "form response", Err: err}
	}
	if n == 0 {
		return nil, &models.NotFoundError{Entity: "Form", ID: formID}
	}
	return resp, nil
}

// InsertSurveyResponse stores enriched survey answers
func (g *SQLGateway) InsertSurveyResponse(ctx context.Context, surveyID string, data models.EnrichedAnswerSet, meta models.ResponseMeta) (*models.Response, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, &models.WriteError{Op: "survey response", Err: err}
	}

	resp := g.newResponse(payload, meta)
	resp.SurveyID = surveyID

	_, err = g.db.ExecContext(ctx, g.q(`
		INSERT INTO survey_responses (id, survey_id, data, ip_hash, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), resp.ID, surveyID, string(payload), resp.IPHash, resp.UserAgent, resp.CreatedAt)
	if err != nil {
		return nil, &models.WriteError{Op: "survey response", Err: err}
	}
	return resp, nil
}

func (g *SQLGateway) newResponse(payload []byte, meta models.ResponseMeta) *models.Response {
	resp := &models.Response{
		ID:        g.newID(),
		Data:      json.RawMessage(payload),
		CreatedAt: g.now(),
	}
	if meta.IPHash != "" {
		resp.IPHash = &meta.IPHash
	}
	if meta.UserAgent != "" {
		resp.UserAgent = &meta.UserAgent
	}
	return resp
}

// GetQuestionsByIDs batch-loads question text and type
func (g *SQLGateway) GetQuestionsByIDs(ctx context.Context, ids []string) (map[string]models.QuestionMeta, error) {
	out := make(map[string]models.QuestionMeta, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := g.db.QueryContext(ctx, g.q(fmt.Sprintf(`
		SELECT id, text, type
		FROM questions
		WHERE id IN (%s)
	`, placeholders)), args...)
	if err != nil {
		return nil, &models.ReadError{Op: "questions", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var meta models.QuestionMeta
		if err := rows.Scan(&id, &meta.Text, &meta.Type); err != nil {
			return nil, &models.ReadError{Op: "questions", Err: err}
		}
		out[id] = meta
	}
	if err := rows.Err(); err != nil {
		return nil, &models.ReadError{Op: "questions", Err: err}
	}
	return out, nil
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
