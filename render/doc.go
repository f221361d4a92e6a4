// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package render turns survey questions and form fields into input widgets
// and renders the HTML pages that display them.
package render
