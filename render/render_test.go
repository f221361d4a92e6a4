// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/danielhkuo/quickly-survey/models"
)

func TestForQuestion(t *testing.T) {
	opts := []models.Option{
		{ID: "o1", Text: "Yes", Value: "y"},
		{ID: "o2", Text: "No"},
	}

	tests := []struct {
		name string
		q    models.Question
		want Widget
	}{
		{
			name: "text input",
			q:    models.Question{ID: "q1", Text: "Name", Type: models.QuestionText, Required: true},
			want: Widget{Kind: KindInput, Name: "q1", Label: "Name", InputType: "text", Required: true},
		},
		{
			name: "email input",
			q:    models.Question{ID: "q2", Text: "Email", Type: models.QuestionEmail},
			want: Widget{Kind: KindInput, Name: "q2", Label: "Email", InputType: "email"},
		},
		{
			name: "date input",
			q:    models.Question{ID: "q3", Text: "When", Type: models.QuestionDate},
			want: Widget{Kind: KindInput, Name: "q3", Label: "When", InputType: "date"},
		},
		{
			name: "textarea",
			q:    models.Question{ID: "q4", Text: "Tell us", Type: models.QuestionTextarea},
			want: Widget{Kind: KindTextarea, Name: "q4", Label: "Tell us"},
		},
		{
			name: "radio uses effective values",
			q:    models.Question{ID: "q5", Text: "Ok?", Type: models.QuestionRadio, Options: opts},
			want: Widget{Kind: KindRadio, Name: "q5", Label: "Ok?", Choices: []Choice{{"Yes", "y"}, {"No", "No"}}},
		},
		{
			name: "checkbox",
			q:    models.Question{ID: "q6", Text: "Pick", Type: models.QuestionCheckbox, Options: opts},
			want: Widget{Kind: KindCheckbox, Name: "q6", Label: "Pick", Choices: []Choice{{"Yes", "y"}, {"No", "No"}}},
		},
		{
			name: "dropdown",
			q:    models.Question{ID: "q7", Text: "Pick one", Type: models.QuestionDropdown, Options: opts},
			want: Widget{Kind: KindDropdown, Name: "q7", Label: "Pick one", Choices: []Choice{{"Yes", "y"}, {"No", "No"}}},
		},
		{
			name: "unknown type renders nothing",
			q:    models.Question{ID: "q8", Text: "Rate", Type: "slider"},
			want: Widget{Kind: KindNone, Name: "q8", Label: "Rate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ForQuestion(tt.q)); diff != "" {
				t.Errorf("ForQuestion() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForField(t *testing.T) {
	w := ForField("email", models.Field{Label: "Email", Type: "email"})
	assert.Equal(t, Widget{Kind: KindInput, Name: "email", Label: "Email", InputType: "email", Required: true}, w)

	w = ForField("name", models.Field{Label: "Name"})
	assert.Equal(t, "text", w.InputType)
}

func TestForSectionSkipsUnknown(t *testing.T) {
	sec := models.Section{Questions: []models.Question{
		{ID: "a", Type: models.QuestionText},
		{ID: "b", Type: "matrix"},
		{ID: "c", Type: models.QuestionNumber},
	}}

	var names []string
	for _, w := range ForSection(sec) {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestForFormKeepsOrder(t *testing.T) {
	fields := orderedmap.New[string, models.Field]()
	fields.Set("zip", models.Field{Label: "Zip", Type: "text"})
	fields.Set("age", models.Field{Label: "Age", Type: "number"})

	widgets := ForForm(&models.Form{ID: "f", Title: "F", Fields: fields})
	require.Len(t, widgets, 2)
	assert.Equal(t, "zip", widgets[0].Name)
	assert.Equal(t, "age", widgets[1].Name)
	assert.Nil(t, ForForm(nil))
}

func TestBind(t *testing.T) {
	widgets := []Widget{
		{Kind: KindInput, Name: "q1"},
		{Kind: KindCheckbox, Name: "q2", Choices: []Choice{{"A", "a"}, {"B", "b"}}},
		{Kind: KindInput, Name: "q3"},
	}
	answers := models.AnswerSet{
		"q1": models.Scalar("Paris"),
		"q2": models.Set("b"),
	}

	controls := Bind(widgets, answers)
	require.Len(t, controls, 3)
	assert.Equal(t, "Paris", controls[0].Value)
	assert.True(t, controls[1].IsSelected("b"))
	assert.False(t, controls[1].IsSelected("a"))
	assert.Empty(t, controls[2].Value)
}

func TestSurveyPage(t *testing.T) {
	view := SurveyView{
		Title:        "Travel",
		Description:  `<b>Hi</b><script>alert(1)</script>`,
		SurveyID:     "s1",
		SectionTitle: "Habits",
		Index:        1,
		Total:        2,
		Progress:     100,
		Controls: Bind([]Widget{
			{Kind: KindRadio, Name: "q2", Label: "Do you travel?", Required: true, Choices: []Choice{{"Yes", "yes"}, {"No", "no"}}},
		}, models.AnswerSet{"q2": models.Scalar("no")}),
		AnswersJSON: `{"q1":"Paris"}`,
		Error:       "Error saving response",
	}

	var buf bytes.Buffer
	require.NoError(t, Survey(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "&lt;b&gt;Hi&lt;/b&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Section 2 of 2")
	assert.Contains(t, html, `value="no" checked`)
	assert.Contains(t, html, "Error saving response")
	assert.Contains(t, html, ">Submit</button>")
	assert.Contains(t, html, `value="previous"`)
	// carried answers are attribute-escaped
	assert.Contains(t, html, `name="_answers" value="{&#34;q1&#34;:&#34;Paris&#34;}"`)
}

func TestFormPage(t *testing.T) {
	fields := orderedmap.New[string, models.Field]()
	fields.Set("name", models.Field{Label: "Name", Type: "text"})
	form := &models.Form{ID: "f1", Title: "Contact", Fields: fields}

	var buf bytes.Buffer
	err := Form(&buf, FormView{Title: form.Title, FormID: form.ID, Controls: Bind(ForForm(form), nil)})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `action="/form/f1"`)
	assert.Contains(t, html, `name="name" type="text" value="" required`)
	assert.NotContains(t, html, `class="error"`)
}

func TestMessagePage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Message(&buf, MessageView{Title: "Thank you", Message: "Your response was recorded."}))
	assert.True(t, strings.Contains(buf.String(), "Your response was recorded."))
}

func TestSurveyPageDescriptionsAreText(t *testing.T) {
	view := SurveyView{
		Title:              "Contact",
		Description:        "Enter it as <first>.<last>@example.com",
		SurveyID:           "s1",
		SectionTitle:       "Details",
		SectionDescription: "Tea & <coffee>",
		Total:              1,
	}

	var buf bytes.Buffer
	require.NoError(t, Survey(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "Enter it as &lt;first&gt;.&lt;last&gt;@example.com")
	assert.Contains(t, html, "Tea &amp; &lt;coffee&gt;")
}
