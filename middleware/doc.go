// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, size,
duration_ms). Sizes are human readable ("1.2 kB").

# Metrics

Count requests and latency per route pattern:

	middleware.WithMetrics(m, "/api/form/{formId}", handler)

The route label is the pattern, not the raw path, so ids do not explode
label cardinality.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with the Content-Type header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Errors are always written as {"error": "message"}. StatusFor maps the
error taxonomy in models to a status code:

	NotFoundError   → 404
	ValidationError → 400
	anything else   → 500

Parse JSON request bodies (capped at 1 MiB):

	var req models.SubmitFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the salted IP hash stored with responses.
*/
package middleware
