// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters for the HTTP API.

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())

Collected series:

  - survey_http_requests_total{route, method, status}
  - survey_http_request_duration_seconds{route, method}
  - survey_submissions_total{kind, outcome}
  - survey_answers_missing_question_total
*/
package metrics
