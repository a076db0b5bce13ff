package generatorimpl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/generator"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
)

const generateFunctionName = "generate_social_post"

const systemPrompt = `You are a social media expert specializing in content creation and platform strategy.
Only generate a post (type: "post") when the user explicitly asks to create, generate, write, or tweak a post; answer everything else with type: "response".
Platform selection: LinkedIn for professional content and business updates, Instagram for visual and lifestyle content with shorter captions, Facebook for community-focused and longer personal content.
Posts use proper formatting: line breaks, strategically placed emojis, bullet points for lists, an engaging opening line and a clear call-to-action. Do not include hashtags in the caption; return them separately.
When tweaking a previous post, carry over its image URLs; otherwise return "empty" for the image field unless one was explicitly provided.`

// generateFunctionSchema is the JSON schema for the structured output the
// model must produce.
const generateFunctionSchema = `{
  "type": "object",
  "properties": {
    "type": {
      "type": "string",
      "enum": ["post", "response"],
      "description": "'post' only if the user explicitly asks to generate a post, 'response' otherwise."
    },
    "platform": {
      "type": "string",
      "enum": ["linkedin", "instagram", "facebook"],
      "description": "The most appropriate platform for this content."
    },
    "caption": {
      "type": "string",
      "description": "The main content of the post or response message, without hashtags."
    },
    "hashtags": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Relevant hashtags for the post."
    },
    "image": {
      "type": "string",
      "description": "'empty' if no image."
    },
    "platform_reason": {
      "type": "string",
      "description": "Brief explanation of why this platform was chosen."
    }
  },
  "required": ["type", "platform", "caption", "hashtags", "image", "platform_reason"]
}`

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type GeneratorImpl struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func New(opts Opts) *GeneratorImpl {
	return &GeneratorImpl{
		client: openai.NewClient(opts.Config.OpenAI.APIKey),
		model:  opts.Config.OpenAI.Model,
		logger: opts.Logger.WithComponent("PostGenerator"),
	}
}

var _ generator.Client = (*GeneratorImpl)(nil)

// GeneratePost makes a single chat completion call, forcing the model through
// the generate_social_post function so the reply is machine-parseable.
func (g *GeneratorImpl) GeneratePost(ctx context.Context, prompt string, history []generator.Message) (*domain.GeneratedPost, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        generateFunctionName,
					Description: "Generate a social media post or response based on the prompt",
					Parameters:  json.RawMessage(generateFunctionSchema),
				},
			},
		},
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: generateFunctionName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("content generation request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("content generation returned no choices")
	}

	return parseToolCall(resp.Choices[0].Message.ToolCalls)
}

func parseToolCall(calls []openai.ToolCall) (*domain.GeneratedPost, error) {
	for _, call := range calls {
		if call.Function.Name != generateFunctionName {
			continue
		}
		var post domain.GeneratedPost
		if err := json.Unmarshal([]byte(call.Function.Arguments), &post); err != nil {
			return nil, fmt.Errorf("malformed generation arguments: %w", err)
		}
		return &post, nil
	}
	return nil, fmt.Errorf("model response carried no %s call", generateFunctionName)
}
