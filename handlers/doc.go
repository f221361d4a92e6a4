// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Survey API
and its HTML pages.

# Handler Types

Each handler is a struct with gateway, config and metrics dependencies:

  - FormHandler: Form retrieval and form submissions
  - SurveyHandler: Survey retrieval and enriched survey submissions
  - PageHandler: Server-rendered form and survey pages

Handlers are created via constructor functions:

	formHandler := handlers.NewFormHandler(gw, cfg, m)

# JSON API

	GET  /api/form/{formId}     → GetForm
	GET  /api/survey/{surveyId} → GetSurvey (children sorted by ordering)
	POST /api/submit-form       → SubmitForm   {formId, data}
	POST /api/submit-survey     → SubmitSurvey {surveyId, responses}

Errors are always {"error": "..."}. Missing fields are 400, an unknown form
or survey is 404, persistence failures are 500. Survey answers are enriched
with question text and type before they are stored.

# Pages

	GET  /form/{formId}       → ShowForm
	POST /form/{formId}       → PostForm
	GET  /survey/{surveyId}   → ShowSurvey (first section)
	POST /survey/{surveyId}   → PostSurvey (previous, next or submit)

Survey pages keep no server-side session. The current section index and
the answers so far are posted back in hidden fields and revalidated
against the survey on every request.
*/
package handlers
