// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Survey API server.

Quickly Survey serves admin-authored forms and multi-section surveys as JSON
and as server-rendered pages, and stores submitted responses. Survey answers
are stored self-describing: each answer carries the question text and type
it was given for.

# Starting the Server

The server reads environment variables (optionally from a .env file) or CLI
flags:

	DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d survey.db

# Configuration

  - DATABASE_URL (-d): Connection string (required)
  - DATABASE_TYPE (-t): postgres or sqlite (default: sqlite)
  - PORT (-p): Server port (default: 3318)
  - IP_HASH_SALT (-ip-salt): Enables storing a salted hash of the client IP
  - REQUIRED_POLICY (-policy): current, none or all (default: current)
  - LOG_FORMAT (-log-format): json or text (default: json)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: JSON API and HTML page handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - gateway: Persistence boundary (Postgres or SQLite)
  - enrich: Joins answers with question text and type
  - traversal: Section-by-section survey state machine
  - render: Widgets and HTML templates
  - schema: Payload validation and ordering
  - models: Domain and request/response types
  - metrics: Prometheus collectors
  - ident: Response ids and client metadata
  - db: Schema creation and SQL dialects
  - cliparse: Configuration parsing

The terminal client lives in cmd/surveyctl and uses the client and prompt
packages.

See package documentation for each component.
*/
package main
