package generatorimpl

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolCall(t *testing.T) {
	t.Run("decodes the generate call", func(t *testing.T) {
		calls := []openai.ToolCall{
			{
				Function: openai.FunctionCall{
					Name: generateFunctionName,
					Arguments: `{
						"type": "post",
						"platform": "linkedin",
						"caption": "We just shipped v2.",
						"hashtags": ["#launch", "#golang"],
						"image": "empty",
						"platform_reason": "Professional product announcement."
					}`,
				},
			},
		}

		post, err := parseToolCall(calls)
		require.NoError(t, err)
		assert.Equal(t, "post", post.Type)
		assert.Equal(t, "linkedin", post.Platform)
		assert.Equal(t, "We just shipped v2.", post.Caption)
		assert.Equal(t, []string{"#launch", "#golang"}, post.Hashtags)
		assert.Equal(t, "empty", post.Image)
	})

	t.Run("ignores unrelated calls and finds the right one", func(t *testing.T) {
		calls := []openai.ToolCall{
			{Function: openai.FunctionCall{Name: "something_else", Arguments: `{}`}},
			{Function: openai.FunctionCall{Name: generateFunctionName, Arguments: `{"type":"response","platform":"facebook","caption":"hi","hashtags":[],"image":"empty","platform_reason":"n/a"}`}},
		}

		post, err := parseToolCall(calls)
		require.NoError(t, err)
		assert.Equal(t, "response", post.Type)
	})

	t.Run("errors when the call is missing", func(t *testing.T) {
		_, err := parseToolCall(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), generateFunctionName)
	})

	t.Run("errors on malformed arguments", func(t *testing.T) {
		calls := []openai.ToolCall{
			{Function: openai.FunctionCall{Name: generateFunctionName, Arguments: `{"type": "post",`}},
		}

		_, err := parseToolCall(calls)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed generation arguments")
	})
}
