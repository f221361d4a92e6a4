// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Survey API and pages.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(gw, cfg, metrics.New())

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

JSON API:

	GET  /api/form/{formId}     - Form definition
	POST /api/submit-form       - Store a form response
	GET  /api/survey/{surveyId} - Survey with sections, questions and options
	POST /api/submit-survey     - Store an enriched survey response

HTML pages:

	GET  /form/{formId}     - Render a form
	POST /form/{formId}     - Submit it
	GET  /survey/{surveyId} - First survey section
	POST /survey/{surveyId} - Next/previous section, or submit from the last

# Handler Initialization

The router creates handler instances with dependency injection:

	formHandler := handlers.NewFormHandler(gw, cfg, m)
	surveyHandler := handlers.NewSurveyHandler(gw, cfg, m)
	pageHandler := handlers.NewPageHandler(gw, cfg, m)

All handlers receive the gateway, the configuration and the metrics.
Every route except /health and /metrics is logged and counted under its
pattern.
*/
package router
