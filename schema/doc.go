// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package schema turns persisted payloads into survey and form values.

ParseSurvey and ParseForm check the payload against an embedded JSON Schema,
decode it, verify required attributes, and (for surveys) sort every child
collection by its ordering key:

	survey, err := schema.ParseSurvey(body)

An absent payload yields models.NotFoundError; anything malformed yields
models.SchemaError.

SortSurvey is stable and idempotent. Consumers call it again even on data
that claims to be sorted already.
*/
package schema
