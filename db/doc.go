// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and dialect differences.

# Schema Creation

CreateSchema initializes all required tables for a dialect:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Dialects

Two dialects are supported:

  - postgres: production, via github.com/lib/pq
  - sqlite: embedded and tests, via modernc.org/sqlite

Queries are written with ? placeholders; Rebind turns them into $1, $2, ...
for Postgres. JSON columns are JSON/JSONB on Postgres and TEXT on SQLite.

# Tables

  - forms: flat form definitions (fields stored as a JSON object)
  - surveys: survey metadata
  - sections: ordered sections of a survey
  - questions: ordered questions of a section
  - options: ordered options of a choice question
  - survey_responses: submitted responses for surveys and forms

# Relationships

	surveys 1──* sections 1──* questions 1──* options
	surveys 1──* survey_responses
	forms   1──* survey_responses

Definition tables cascade on delete; responses keep their data and lose the
link (ON DELETE SET NULL).
*/
package db
