// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
)

// Answer is a single question's answer: either one scalar value, or a set of
// values for checkbox questions. The zero value is an empty scalar.
//
// Values that arrived as JSON numbers or booleans remember it and are
// written back as the same literal.
type Answer struct {
	value  string
	values []string
	multi  bool
	lits   map[string]bool
}

// Scalar returns a single-valued answer.
func Scalar(v string) Answer {
	return Answer{value: v}
}

// Set returns a multi-valued answer. Duplicates are dropped, first
// occurrence wins.
func Set(vs ...string) Answer {
	a := Answer{multi: true, values: []string{}}
	for _, v := range vs {
		a = a.With(v)
	}
	return a
}

func (a Answer) IsMulti() bool { return a.multi }

// Value returns the scalar value. For sets it is empty.
func (a Answer) Value() string { return a.value }

// Values returns a copy of the set members. A scalar answer yields a
// one-element slice, or nil when empty.
func (a Answer) Values() []string {
	if !a.multi {
		if a.value == "" {
			return nil
		}
		return []string{a.value}
	}
	return slices.Clone(a.values)
}

// Contains reports whether v is part of the answer.
func (a Answer) Contains(v string) bool {
	if !a.multi {
		return a.value == v
	}
	return slices.Contains(a.values, v)
}

// IsEmpty reports whether the answer carries no value.
func (a Answer) IsEmpty() bool {
	if a.multi {
		return len(a.values) == 0
	}
	return a.value == ""
}

// With returns the set with v added. A scalar is promoted to a set first.
func (a Answer) With(v string) Answer {
	out := a.asSet()
	if !slices.Contains(out.values, v) {
		out.values = append(out.values, v)
	}
	return out
}

// Without returns the set with v removed.
func (a Answer) Without(v string) Answer {
	out := a.asSet()
	out.values = slices.DeleteFunc(out.values, func(s string) bool { return s == v })
	return out
}

func (a Answer) asSet() Answer {
	if a.multi {
		return Answer{multi: true, values: slices.Clone(a.values), lits: a.lits}
	}
	out := Answer{multi: true, values: []string{}, lits: a.lits}
	if a.value != "" {
		out.values = append(out.values, a.value)
	}
	return out
}

// AsSet converts a scalar answer into a set answer.
func (a Answer) AsSet() Answer { return a.asSet() }

// Equal reports whether both answers have the same shape and values.
// How the values were encoded is not compared.
func (a Answer) Equal(b Answer) bool {
	if a.multi != b.multi {
		return false
	}
	if !a.multi {
		return a.value == b.value
	}
	return slices.Equal(a.values, b.values)
}

func (a Answer) String() string {
	if a.multi {
		return fmt.Sprint(a.values)
	}
	return a.value
}

// MarshalJSON writes a scalar as a string and a set as an array. Numbers
// and booleans are written as they were received.
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.multi {
		return a.encode(a.value)
	}
	items := make([]json.RawMessage, 0, len(a.values))
	for _, v := range a.values {
		b, err := a.encode(v)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return json.Marshal(items)
}

func (a Answer) encode(v string) ([]byte, error) {
	if a.lits[v] {
		return []byte(v), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts a string, a number or boolean, or an array of those.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	lits := map[string]bool{}
	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		vs := make([]string, 0, len(raw))
		for _, item := range raw {
			v, literal, err := scalarText(item)
			if err != nil {
				return err
			}
			if literal {
				lits[v] = true
			}
			vs = append(vs, v)
		}
		*a = Set(vs...)
		a.setLiterals(lits)
		return nil
	}
	v, literal, err := scalarText(data)
	if err != nil {
		return err
	}
	*a = Scalar(v)
	if literal {
		lits[v] = true
	}
	a.setLiterals(lits)
	return nil
}

func (a *Answer) setLiterals(lits map[string]bool) {
	if len(lits) > 0 {
		a.lits = maps.Clone(lits)
	}
}

// scalarText returns the text of a JSON scalar and whether it was a number
// or boolean literal rather than a string.
func scalarText(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false, fmt.Errorf("answer: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	case '{':
		return "", false, fmt.Errorf("answer: objects are not valid answers")
	case 'n':
		return "", false, fmt.Errorf("answer: null is not a valid answer")
	default:
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}
}

// AnswerSet maps question identifiers (or form field names) to answers.
// An absent key means the question was never answered.
type AnswerSet map[string]Answer

// Clone returns an independent copy.
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		if v.multi {
			v.values = slices.Clone(v.values)
		}
		out[k] = v
	}
	return out
}

// Keys returns the answered identifiers in sorted order.
func (s AnswerSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EnrichedAnswer is a self-describing answer: the question text and type are
// stored next to the value.
type EnrichedAnswer struct {
	QuestionText string       `json:"questionText"`
	QuestionType QuestionType `json:"questionType"`
	Answer       Answer       `json:"answer"`
}

// NewEnrichedAnswer builds an EnrichedAnswer, checking that the answer's
// shape agrees with a known question type. A scalar answer to a checkbox
// question becomes a one-element set.
func NewEnrichedAnswer(text string, typ QuestionType, answer Answer) (EnrichedAnswer, error) {
	if text == "" {
		text = MissingQuestionText
	}
	if typ == "" {
		typ = MissingQuestionType
	}
	switch {
	case typ.IsMulti() && !answer.IsMulti():
		answer = answer.AsSet()
	case typ.Valid() && !typ.IsMulti() && answer.IsMulti():
		return EnrichedAnswer{}, &ValidationError{
			Field:   "responses",
			Message: fmt.Sprintf("question of type %s takes a single value", typ),
		}
	}
	return EnrichedAnswer{QuestionText: text, QuestionType: typ, Answer: answer}, nil
}

// EnrichedAnswerSet maps question identifiers to enriched answers.
type EnrichedAnswerSet map[string]EnrichedAnswer
