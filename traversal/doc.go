// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package traversal holds the interaction state for filling in a survey or a
form, independent of how it is displayed.

# Surveys

A Controller moves through these states:

	loading-id → loading-schema → in-progress(i) → submitted
	                    ↓
	                not-found

Typical use:

	c := traversal.New(loader, submitter, traversal.WithPolicy(cfg.RequiredPolicy))
	_ = c.Resolve("s1")
	if err := c.Load(ctx); err != nil {
		// c.State() is StateNotFound
	}
	_ = c.Answer("q1", "Paris")
	_ = c.Toggle("q3", "Oslo", true)
	outcome, err := c.Next(ctx)

Next on the last section submits. A failed submission keeps the answers and
the section index so the user can retry; nothing is retried automatically.

Resolve and Load cancel a load still in flight. The superseded Load returns
ErrStale and its result is dropped.

# Required Questions

RequiredPolicy controls enforcement:

  - RequireCurrentSection (default): Next checks the displayed section
  - RequireNone: never checked
  - RequireAllSections: the current section on Next, every section on submit

Violations are reported as *RequiredError.

# Forms

FormSession is the single-section variant: Set records field values (last
write wins) and Submit sends them. Every field counts as required unless the
policy is RequireNone.

# Stateless Use

Restore and RestoreForm rebuild a session mid-way, for callers such as HTML
pages that carry the answers between requests.
*/
package traversal
