package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"
)

// OpenAIClient implements the Client interface using OpenAI's chat API.
type OpenAIClient struct {
	client openai.Client
	config Config
}

// NewOpenAIClient creates an OpenAI-backed chat-completion client.
// Returns an error if the API key is missing or invalid.
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	// Use config API key or fall back to environment variable
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client: client,
		config: config,
	}, nil
}

// Complete sends the request to OpenAI and returns the full reply text.
func (o *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	params, err := o.buildParams(req)
	if err != nil {
		return "", err
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no response generated", ErrCompletionFailed)
	}

	return completion.Choices[0].Message.Content, nil
}

// StreamComplete sends the request to OpenAI and returns the reply as a
// stream of text deltas.
func (o *OpenAIClient) StreamComplete(ctx context.Context, req Request) (Stream, error) {
	params, err := o.buildParams(req)
	if err != nil {
		return nil, err
	}

	return &openaiStream{stream: o.client.Chat.Completions.NewStreaming(ctx, params)}, nil
}

// buildParams translates a Request into OpenAI chat completion parameters.
func (o *OpenAIClient) buildParams(req Request) (openai.ChatCompletionNewParams, error) {
	if len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, fmt.Errorf("%w: no messages", ErrInvalidRequest)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, m.Role)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(o.config.Model),
		Messages: messages,
		// Always transmitted: zero must mean deterministic decoding, not
		// the provider default.
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   req.Schema.Name,
					Schema: req.Schema.Schema,
					Strict: openai.Bool(true),
				},
			},
		}
	}

	return params, nil
}

// openaiStream adapts the SDK's SSE stream to the Stream interface,
// surfacing only non-empty content deltas.
type openaiStream struct {
	stream  *ssestream.Stream[openai.ChatCompletionChunk]
	current string
}

func (s *openaiStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		// Role-only and finish chunks carry no content.
		if chunk.Choices[0].Delta.Content == "" {
			continue
		}
		s.current = chunk.Choices[0].Delta.Content
		return true
	}
	return false
}

func (s *openaiStream) Current() string {
	return s.current
}

func (s *openaiStream) Err() error {
	if err := s.stream.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}
	return nil
}

func (s *openaiStream) Close() error {
	return s.stream.Close()
}
