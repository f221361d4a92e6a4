// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/middleware"
)

func NewRouter(gw gateway.Gateway, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	formHandler := handlers.NewFormHandler(gw, cfg, m)
	surveyHandler := handlers.NewSurveyHandler(gw, cfg, m)
	pageHandler := handlers.NewPageHandler(gw, cfg, m)

	// handle registers a logged, instrumented route
	handle := func(pattern string, h http.HandlerFunc) {
		_, route, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(m, route, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// JSON API
	handle("GET /api/form/{formId}", formHandler.GetForm)
	handle("POST /api/submit-form", formHandler.SubmitForm)
	handle("GET /api/survey/{surveyId}", surveyHandler.GetSurvey)
	handle("POST /api/submit-survey", surveyHandler.SubmitSurvey)

	// HTML pages
	handle("GET /form/{formId}", pageHandler.ShowForm)
	handle("POST /form/{formId}", pageHandler.PostForm)
	handle("GET /survey/{surveyId}", pageHandler.ShowSurvey)
	handle("POST /survey/{surveyId}", pageHandler.PostSurvey)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-survey API v1"))
	})

	return mux
}
