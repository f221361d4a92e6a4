// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package enrich stores survey answers together with the text and type of
// the question they answer, so a response stays readable after the survey
// changes. Question metadata is fetched in a single batch per submission.
package enrich
