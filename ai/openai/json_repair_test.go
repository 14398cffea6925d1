package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid JSON untouched",
			input: `[{"company_name":"Apple"}]`,
			want:  `[{"company_name":"Apple"}]`,
		},
		{
			name:  "markdown fence stripped",
			input: "```json\n[{\"company_name\":\"Apple\"}]\n```",
			want:  `[{"company_name":"Apple"}]`,
		},
		{
			name:  "bare fence stripped",
			input: "```\n[]\n```",
			want:  `[]`,
		},
		{
			name:  "trailing comma in array removed",
			input: `["a", "b",]`,
			want:  `["a", "b"]`,
		},
		{
			name:  "trailing comma in object removed",
			input: `{"a": 1,}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "trailing comma before newline removed",
			input: "{\"a\": 1,\n}",
			want:  "{\"a\": 1\n}",
		},
		{
			name:  "comma inside string preserved",
			input: `{"founders": ["Jobs, Steve",]}`,
			want:  `{"founders": ["Jobs, Steve"]}`,
		},
		{
			name:  "escaped quote inside string preserved",
			input: `{"a": "say \"hi\",", "b": 2,}`,
			want:  `{"a": "say \"hi\",", "b": 2}`,
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  \n[]\n  ",
			want:  `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.input)
			assert.Equal(t, tt.want, got)

			// Whatever the repair produced must be parseable JSON.
			var v any
			require.NoError(t, json.Unmarshal([]byte(got), &v))
		})
	}
}
