package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripJSONFences(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripJSONFences(tc.input))
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	type out struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	var v out
	err := DecodeStrict("```json\n{\"title\":\"Ha Long Bay\",\"tags\":[\"bay\",\"cruise\"]}\n```", &v)
	require.NoError(t, err)
	assert.Equal(t, "Ha Long Bay", v.Title)
	assert.Len(t, v.Tags, 2)
}

func TestDecodeStrict_RejectsUnknownFields(t *testing.T) {
	type out struct {
		Title string `json:"title"`
	}
	var v out
	err := DecodeStrict(`{"title":"x","surprise":true}`, &v)
	require.Error(t, err)
}

func TestDecodeStrict_RejectsEmptyAndProse(t *testing.T) {
	type out struct{}
	var v out
	require.Error(t, DecodeStrict("", &v))
	require.Error(t, DecodeStrict("Sure! Here is the JSON you asked for.", &v))
}
