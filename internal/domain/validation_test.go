package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeInput(t *testing.T, body string) TaskInput {
	t.Helper()
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestValidateTaskInput(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		isUpdate bool
		expected []string
	}{
		{
			name:     "create with title",
			body:     `{"title":"Buy milk"}`,
			expected: nil,
		},
		{
			name:     "create without title",
			body:     `{}`,
			expected: []string{MsgTitleRequired},
		},
		{
			name:     "create with null title",
			body:     `{"title":null}`,
			expected: []string{MsgTitleRequired},
		},
		{
			name:     "create with blank title",
			body:     `{"title":"   "}`,
			expected: []string{MsgTitleRequired},
		},
		{
			name:     "create with title of no-break spaces",
			body:     `{"title":"\u00a0\u00a0"}`,
			expected: nil,
		},
		{
			name:     "create with title of vertical tab and NUL",
			body:     `{"title":"\u000b\u0000\t"}`,
			expected: []string{MsgTitleRequired},
		},
		{
			name:     "update without title",
			body:     `{"completed":true}`,
			isUpdate: true,
			expected: nil,
		},
		{
			name:     "update with blank title",
			body:     `{"title":"  "}`,
			isUpdate: true,
			expected: []string{MsgTitleEmpty},
		},
		{
			name:     "title exactly 255 characters",
			body:     `{"title":"` + strings.Repeat("a", 255) + `"}`,
			expected: nil,
		},
		{
			name:     "title 256 characters",
			body:     `{"title":"` + strings.Repeat("a", 256) + `"}`,
			expected: []string{MsgTitleTooLong},
		},
		{
			name:     "multibyte title counted in characters",
			body:     `{"title":"` + strings.Repeat("ż", 255) + `"}`,
			expected: nil,
		},
		{
			name:     "surrounding whitespace is not counted",
			body:     `{"title":"  ` + strings.Repeat("a", 255) + `  "}`,
			expected: nil,
		},
		{
			name:     "description too long",
			body:     `{"title":"x","description":"` + strings.Repeat("d", 1001) + `"}`,
			expected: []string{MsgDescriptionTooLong},
		},
		{
			name:     "non-string title",
			body:     `{"title":["a"]}`,
			expected: []string{MsgTitleNotString},
		},
		{
			name:     "numeric title is coerced",
			body:     `{"title":42}`,
			expected: nil,
		},
		{
			name:     "invalid completed",
			body:     `{"title":"x","completed":"yes"}`,
			expected: []string{MsgCompletedNotBoolean},
		},
		{
			name:     "all violations accumulate",
			body:     `{"title":"` + strings.Repeat("a", 300) + `","description":"` + strings.Repeat("d", 1001) + `","completed":2}`,
			isUpdate: true,
			expected: []string{MsgTitleTooLong, MsgDescriptionTooLong, MsgCompletedNotBoolean},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateTaskInput(decodeInput(t, tc.body), tc.isUpdate)
			if tc.expected == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Equal(t, ValidationErrors(tc.expected), errs)
			assert.True(t, errors.Is(errs, ErrValidation))
		})
	}
}

func TestParseCompleted(t *testing.T) {
	accepted := map[string]bool{
		`true`:    true,
		`false`:   false,
		`"true"`:  true,
		`"TRUE"`:  true,
		`"False"`: false,
		`"1"`:     true,
		`"0"`:     false,
		`1`:       true,
		`0`:       false,
	}
	for raw, expected := range accepted {
		got, err := ParseCompleted(json.RawMessage(raw))
		require.NoError(t, err, "value %s should be accepted", raw)
		assert.Equal(t, expected, got, "value %s", raw)
	}

	for _, raw := range []string{`"yes"`, `""`, `2`, `-1`, `[]`, `{}`, `" true"`, `0.5`} {
		_, err := ParseCompleted(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrInvalidCompleted, "value %s should be rejected", raw)
	}
}

func TestTaskInputHasFields(t *testing.T) {
	assert.False(t, decodeInput(t, `{}`).HasFields())
	assert.False(t, decodeInput(t, `{"unknown":1}`).HasFields())
	assert.False(t, decodeInput(t, `{"title":null}`).HasFields())
	assert.True(t, decodeInput(t, `{"description":""}`).HasFields())
	assert.True(t, decodeInput(t, `{"completed":false}`).HasFields())
}
