// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/schema"
)

// maxResponseBytes caps response bodies read from the API
const maxResponseBytes = 4 << 20

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to the survey HTTP API. It satisfies the traversal
// loader and submitter interfaces.
type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{base: u, http: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.base.String() + "/" + strings.Join(escaped, "/")
}

// LoadSurvey fetches GET /api/survey/{id}.
func (c *Client) LoadSurvey(ctx context.Context, id string) (*models.Survey, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("api", "survey", id), nil, "Survey", id)
	if err != nil {
		return nil, err
	}
	return schema.ParseSurvey(body)
}

// LoadForm fetches GET /api/form/{id}.
func (c *Client) LoadForm(ctx context.Context, id string) (*models.Form, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("api", "form", id), nil, "Form", id)
	if err != nil {
		return nil, err
	}
	return schema.ParseForm(body)
}

// SubmitSurvey posts {surveyId, responses}.
func (c *Client) SubmitSurvey(ctx context.Context, id string, answers models.AnswerSet) error {
	payload := models.SubmitSurveyRequest{SurveyID: id, Responses: answers}
	_, err := c.do(ctx, http.MethodPost, c.endpoint("api", "submit-survey"), payload, "Survey", id)
	return err
}

// SubmitForm posts {formId, data}.
func (c *Client) SubmitForm(ctx context.Context, id string, data models.AnswerSet) error {
	payload := models.SubmitFormRequest{FormID: id, Data: data}
	_, err := c.do(ctx, http.MethodPost, c.endpoint("api", "submit-form"), payload, "Form", id)
	return err
}

// do sends one request. A 404 becomes *models.NotFoundError for entity.
func (c *Client) do(ctx context.Context, method, target string, payload any, entity, id string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &models.NotFoundError{Entity: entity, ID: id}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		_ = json.Unmarshal(body, &e)
		return nil, &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	return body, nil
}
