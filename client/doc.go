// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is an HTTP client for the survey API.

A Client can be handed straight to the traversal package:

	c, err := client.New("http://localhost:3318", client.WithTimeout(10*time.Second))
	ctrl := traversal.New(c, c)

Fetched surveys and forms go through schema.ParseSurvey and schema.ParseForm,
so they arrive validated and sorted. A 404 is returned as
*models.NotFoundError; any other non-2xx status as *APIError carrying the
server's error message. Requests are never retried.
*/
package client
