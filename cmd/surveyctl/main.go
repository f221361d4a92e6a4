// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command surveyctl fills in forms and surveys served by the Quickly Survey
// API from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-survey/client"
	"github.com/danielhkuo/quickly-survey/prompt"
	"github.com/danielhkuo/quickly-survey/traversal"
)

const defaultAPI = "http://localhost:3318"

type rootOptions struct {
	api     string
	timeout time.Duration
	policy  string
	answers string
}

// newRootCmd builds the command tree. newDriver supplies the prompt driver
// for interactive runs.
func newRootCmd(newDriver func(out io.Writer) prompt.Driver) *cobra.Command {
	opts := &rootOptions{}

	api := os.Getenv("SURVEY_API")
	if api == "" {
		api = defaultAPI
	}

	rootCmd := &cobra.Command{
		Use:   "surveyctl",
		Short: "Fill in Quickly Survey forms and surveys from the terminal",
		Long: `surveyctl loads a form or survey from the API, asks each question in the
terminal and submits the answers.

Pass --answers with a YAML file to answer without prompting:

  surveyctl survey s1 --answers answers.yaml`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.api, "api", api, "API base URL (env SURVEY_API)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Per-request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.policy, "policy", "current", "Required-question policy: current, none or all")
	rootCmd.PersistentFlags().StringVar(&opts.answers, "answers", "", "YAML file with answers; skips prompting")

	surveyCmd := &cobra.Command{
		Use:   "survey [survey-id]",
		Short: "Answer a multi-section survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurvey(cmd.Context(), cmd.OutOrStdout(), opts, args[0], newDriver)
		},
	}

	formCmd := &cobra.Command{
		Use:   "form [form-id]",
		Short: "Fill in a single-page form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.Context(), cmd.OutOrStdout(), opts, args[0], newDriver)
		},
	}

	rootCmd.AddCommand(surveyCmd, formCmd)
	return rootCmd
}

func (o *rootOptions) client() (*client.Client, error) {
	return client.New(o.api, client.WithTimeout(o.timeout))
}

func runSurvey(ctx context.Context, out io.Writer, opts *rootOptions, id string, newDriver func(io.Writer) prompt.Driver) error {
	policy, err := traversal.ParsePolicy(opts.policy)
	if err != nil {
		return err
	}
	api, err := opts.client()
	if err != nil {
		return err
	}

	ctrl := traversal.New(api, api, traversal.WithPolicy(policy))
	if err := ctrl.Resolve(id); err != nil {
		return err
	}
	if err := ctrl.Load(ctx); err != nil {
		return fmt.Errorf("load survey %s: %w", id, err)
	}

	if opts.answers == "" {
		return prompt.RunSurvey(ctx, ctrl, newDriver(out))
	}

	answers, err := prompt.LoadAnswers(opts.answers)
	if err != nil {
		return err
	}
	if err := prompt.AutofillSurvey(ctx, ctrl, answers); err != nil {
		return err
	}
	fmt.Fprintf(out, "Response to %q submitted\n", ctrl.Survey().Title)
	return nil
}

func runForm(ctx context.Context, out io.Writer, opts *rootOptions, id string, newDriver func(io.Writer) prompt.Driver) error {
	policy, err := traversal.ParsePolicy(opts.policy)
	if err != nil {
		return err
	}
	api, err := opts.client()
	if err != nil {
		return err
	}

	session := traversal.NewFormSession(api, api, traversal.WithPolicy(policy))
	if err := session.Resolve(id); err != nil {
		return err
	}
	if err := session.Load(ctx); err != nil {
		return fmt.Errorf("load form %s: %w", id, err)
	}

	if opts.answers == "" {
		return prompt.RunForm(ctx, session, newDriver(out))
	}

	answers, err := prompt.LoadAnswers(opts.answers)
	if err != nil {
		return err
	}
	if err := prompt.AutofillForm(ctx, session, answers); err != nil {
		return err
	}
	fmt.Fprintf(out, "Response to %q submitted\n", session.Form().Title)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(prompt.NewTerminalDriver).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
