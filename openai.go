package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	goopenai "github.com/sashabaranov/go-openai"
	bolt "go.etcd.io/bbolt"
)

type openaiProvider struct {
	APIKey string `json:"apiKey"`
}

type openai struct {
	model       string
	temperature float64

	client *goopenai.Client
}

const defaultOpenAIModel = "gpt-4o-mini"

func (o openai) chat(ctx context.Context, turns []turn) llmResponse {
	msgs := make([]goopenai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    t.Role,
			Content: t.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		goopenai.ChatCompletionRequest{
			Model:       o.model,
			Messages:    msgs,
			Temperature: float32(o.temperature),
		},
	)
	if err != nil {
		return llmResponse{
			err: fmt.Errorf("error creating chat completion: %w", err),
		}
	}

	if len(resp.Choices) == 0 {
		return llmResponse{
			err: fmt.Errorf("no choices in response"),
		}
	}

	return llmResponse{
		content: resp.Choices[0].Message.Content,
	}
}

func (o openaiProvider) Title() string {
	if o.isConfigured() {
		return fmt.Sprintf("%s (configured)", providerOpenAI)
	}
	return fmt.Sprintf("%s (not configured)", providerOpenAI)
}

func (o openaiProvider) Description() string {
	return "Configure OpenAI connection"
}

func (o openaiProvider) FilterValue() string {
	return providerOpenAI
}

func (o openaiProvider) name() string {
	return providerOpenAI
}

func (o openaiProvider) defaultModel() string {
	return defaultOpenAIModel
}

func (o openaiProvider) isConfigured() bool {
	return o.APIKey != ""
}

func (o openaiProvider) form(width, height int, keymap *huh.KeyMap) *huh.Form {
	return credentialForm("openai", providerOpenAI, "Enter the API key for OpenAI.", o.APIKey).
		WithWidth(width).
		WithHeight(height).
		WithKeyMap(keymap)
}

func (o openaiProvider) saveForm(db *bolt.DB, form *huh.Form) (llmProvider, bool, error) {
	apiKey, ok := credentialFromForm("openai", form)
	if !ok {
		return o, false, nil
	}

	o.APIKey = apiKey

	if err := saveProviderSettings(db, "openai", o); err != nil {
		return o, false, fmt.Errorf("error saving openai settings: %w", err)
	}

	return o, true, nil
}

func (o openaiProvider) newLLM(setting modelSetting) (llm, error) {
	return newOpenAI(goopenai.DefaultConfig(o.APIKey), setting), nil
}

func newOpenAI(cfg goopenai.ClientConfig, setting modelSetting) openai {
	return openai{
		model:       setting.Model,
		temperature: setting.Temperature,
		client:      goopenai.NewClientWithConfig(cfg),
	}
}
