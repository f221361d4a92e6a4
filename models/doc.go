// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and error types for the API.

# Domain Types

Survey definitions are read-only trees:

	Survey 1──* Section 1──* Question 1──* Option

Every child collection carries an Ordering key and is displayed in ascending
order (see package schema for sorting).

Form is the flat, single-section variant. Its Fields map keeps the order in
which fields were declared, including through JSON round trips.

# Answers

AnswerSet maps a question ID (or form field name) to an Answer. An Answer is
either a scalar string or, for checkbox questions, a set of strings:

	answers := models.AnswerSet{
		"q1": models.Scalar("Paris"),
		"q3": models.Set("red", "blue"),
	}

On the wire a scalar is a JSON string and a set is a JSON array.

EnrichedAnswer stores the question's text and type next to the answer so
persisted responses are self-describing. Missing metadata is recorded with
the sentinels MissingQuestionText and MissingQuestionType.

# Request Types

  - SubmitFormRequest: formId, data
  - SubmitSurveyRequest: surveyId, responses

# Errors

  - NotFoundError: form or survey absent (404)
  - ValidationError: bad request fields (400)
  - ReadError / WriteError: persistence failure (500)
  - SchemaError: malformed stored definition (500)

ErrorResponse is the JSON body for all of them: {"error": "..."}.
*/
package models
