package llm

import (
	"context"
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// openAIProvider serves OpenAI and any OpenAI-compatible API such as
// OpenRouter. name is what errors and events report.
type openAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

func newOpenAI(name string, cfg Config) *openAIProvider {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &openAIProvider{
		name:   name,
		client: openai.NewClientWithConfig(conf),
		model:  cfg.Model,
	}
}

func (p *openAIProvider) ModelID() string { return p.model }

func (p *openAIProvider) Generate(ctx context.Context, req Request) (*Reply, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, t := range req.Turns {
		role := openai.ChatMessageRoleUser
		if t.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, &Error{Provider: p.name, Kind: KindRejected, Err: err}
		}
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		var apiErr *openai.APIError
		var reqErr *openai.RequestError
		switch {
		case errors.As(err, &apiErr):
			return nil, classify(p.name, apiErr.HTTPStatusCode, err)
		case errors.As(err, &reqErr):
			return nil, classify(p.name, reqErr.HTTPStatusCode, err)
		}
		return nil, classify(p.name, 0, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Provider: p.name, Kind: KindInvalidOutput, Err: errors.New("reply has no choices")}
	}

	choice := resp.Choices[0]
	return finish(p.name, req, choice.Message.Content, Reply{
		Model:        resp.Model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Truncated:    choice.FinishReason == openai.FinishReasonLength,
	})
}
