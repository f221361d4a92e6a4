// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/gateway"
	"github.com/danielhkuo/quickly-survey/metrics"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/prompt"
	"github.com/danielhkuo/quickly-survey/router"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func startAPI(t *testing.T) (*sql.DB, string) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	testutil.InsertSurvey(t, conn, testutil.SampleSurvey())
	testutil.InsertForm(t, conn, testutil.SampleForm())

	gw := gateway.NewSQLGateway(conn, db.DialectSQLite)
	srv := httptest.NewServer(router.NewRouter(gw, testutil.GetTestConfig(), metrics.New()))
	t.Cleanup(srv.Close)
	return conn, srv.URL
}

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, driver prompt.Driver, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(io.Writer) prompt.Driver { return driver })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func countResponses(t *testing.T, conn *sql.DB, column, id string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM survey_responses WHERE "+column+" = ?", id).Scan(&n))
	return n
}

func TestSurveyWithAnswersFile(t *testing.T) {
	conn, api := startAPI(t)
	answers := writeAnswers(t, "q1: Paris\nq2: \"yes\"\nq3: [Rome]\n")

	out, err := execute(t, nil, "survey", "s1", "--api", api, "--answers", answers)
	require.NoError(t, err)
	assert.Contains(t, out, `Response to "Travel" submitted`)
	assert.Equal(t, 1, countResponses(t, conn, "survey_id", "s1"))
}

func TestSurveyAnswersFileMissingRequired(t *testing.T) {
	conn, api := startAPI(t)
	answers := writeAnswers(t, "q1: Paris\n")

	_, err := execute(t, nil, "survey", "s1", "--api", api, "--answers", answers)
	assert.ErrorContains(t, err, "unanswered required questions")
	assert.Equal(t, 0, countResponses(t, conn, "survey_id", "s1"))
}

func TestSurveyPolicyNone(t *testing.T) {
	conn, api := startAPI(t)
	answers := writeAnswers(t, "q3: [Oslo]\n")

	_, err := execute(t, nil, "survey", "s1", "--api", api, "--answers", answers, "--policy", "none")
	require.NoError(t, err)
	assert.Equal(t, 1, countResponses(t, conn, "survey_id", "s1"))
}

func TestFormWithAnswersFile(t *testing.T) {
	conn, api := startAPI(t)
	answers := writeAnswers(t, "name: Ada\nemail: ada@example.com\n")

	out, err := execute(t, nil, "form", "f1", "--api", api, "--answers", answers)
	require.NoError(t, err)
	assert.Contains(t, out, `Response to "Contact" submitted`)
	assert.Equal(t, 1, countResponses(t, conn, "form_id", "f1"))
}

func TestUnknownSurvey(t *testing.T) {
	_, api := startAPI(t)

	_, err := execute(t, nil, "survey", "nope", "--api", api, "--answers", "unused.yaml")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorContains(t, err, "load survey nope")
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, nil, "survey", "s1", "--policy", "sometimes")
	assert.Error(t, err)

	_, err = execute(t, nil, "form", "f1", "--api", "localhost")
	assert.Error(t, err)

	_, err = execute(t, nil, "survey")
	assert.Error(t, err, "survey id is required")
}

// lineDriver answers every text prompt from a fixed list
type lineDriver struct {
	prompt.Driver
	inputs []string
	infos  []string
}

func (d *lineDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *lineDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestInteractiveForm(t *testing.T) {
	conn, api := startAPI(t)
	d := &lineDriver{inputs: []string{"Ada", "ada@example.com"}}

	_, err := execute(t, d, "form", "f1", "--api", api)
	require.NoError(t, err)
	assert.Contains(t, d.infos, "Contact")
	assert.Equal(t, 1, countResponses(t, conn, "form_id", "f1"))
}
