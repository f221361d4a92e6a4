// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package prompt runs surveys and forms in a terminal.

RunSurvey and RunForm drive a traversal.Controller or traversal.FormSession
through a Driver. NewTerminalDriver asks questions with survey/v2 widgets:
text inputs validate number, date and email types, choice questions use a
select, checkboxes a multi-select. Tests script a fake Driver instead.

For non-interactive runs, answers come from a YAML file:

	answers, err := prompt.LoadAnswers("answers.yaml")
	err = prompt.AutofillSurvey(ctx, ctrl, answers)

Keys that name no question are rejected before anything is submitted.
*/
package prompt
