// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Supported database dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DriverName returns the database/sql driver registered for a dialect.
func DriverName(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "postgres", nil
	case DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
}

// Rebind rewrites ? placeholders into the dialect's positional form.
func Rebind(dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// TypedParam returns a placeholder carrying an explicit type on Postgres,
// where parameters in a SELECT list are otherwise inferred as text.
func TypedParam(dialect, pgType string) string {
	if dialect != DialectPostgres {
		return "?"
	}
	return "CAST(? AS " + pgType + ")"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	ddl, err := SchemaFor(dialect)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SchemaFor returns the DDL for a dialect. Form fields use JSON (not JSONB)
// on Postgres so the declared key order survives storage.
func SchemaFor(dialect string) (string, error) {
	var jsonType, jsonbType string
	switch dialect {
	case DialectPostgres:
		jsonType, jsonbType = "JSON", "JSONB"
	case DialectSQLite:
		jsonType, jsonbType = "TEXT", "TEXT"
	default:
		return "", fmt.Errorf("unsupported database type %q", dialect)
	}
	r := strings.NewReplacer("{{json}}", jsonType, "{{jsonb}}", jsonbType)
	return r.Replace(schema), nil
}

const schema = `
-- Flat forms
CREATE TABLE IF NOT EXISTS forms (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    fields {{json}} NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Surveys
CREATE TABLE IF NOT EXISTS surveys (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Sections
CREATE TABLE IF NOT EXISTS sections (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT,
    ordering DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sections_survey_id ON sections(survey_id);

-- Questions
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    section_id TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    type TEXT NOT NULL,
    required BOOLEAN NOT NULL DEFAULT FALSE,
    ordering DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_questions_section_id ON questions(section_id);

-- Options
CREATE TABLE IF NOT EXISTS options (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    value TEXT,
    ordering DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_options_question_id ON options(question_id);

-- Responses (survey or form)
CREATE TABLE IF NOT EXISTS survey_responses (
    id TEXT PRIMARY KEY,
    survey_id TEXT REFERENCES surveys(id) ON DELETE SET NULL,
    form_id TEXT REFERENCES forms(id) ON DELETE SET NULL,
    data {{jsonb}} NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_survey_responses_survey_id ON survey_responses(survey_id);
CREATE INDEX IF NOT EXISTS idx_survey_responses_form_id ON survey_responses(form_id);
`
