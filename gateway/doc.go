// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gateway is the data access layer for forms, surveys and responses.

Handlers and the enrichment step depend on the Gateway interface, so tests
can swap in a fake. SQLGateway is the database/sql implementation:

	g := gateway.NewSQLGateway(conn, cfg.DatabaseType)
	survey, err := g.GetSurvey(ctx, "s1")

# Queries

Queries are written with ? placeholders and rewritten for Postgres by
db.Rebind. A survey is loaded with a single LEFT JOIN across sections,
questions and options, then grouped in memory.

Form responses are inserted with INSERT ... SELECT FROM forms, so a
response for an unknown form affects zero rows and comes back as a
*models.NotFoundError without a separate existence check.

# Errors

  - *models.NotFoundError: the form or survey does not exist
  - *models.ReadError: a query failed
  - *models.WriteError: an insert failed
  - *models.SchemaError: stored data does not decode

Nothing is retried.
*/
package gateway
