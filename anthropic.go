package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/huh"
	bolt "go.etcd.io/bbolt"
)

type anthropicProvider struct {
	APIKey string `json:"apiKey"`
}

type anthropic struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64

	client *http.Client
}

type anthropicChatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type anthropicChatResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Text string `json:"text"`
}

const (
	anthropicAPIEndpoint  = "https://api.anthropic.com/v1"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

func newAnthropic(apiKey string, setting modelSetting) anthropic {
	return anthropic{
		endpoint:    anthropicAPIEndpoint,
		apiKey:      apiKey,
		model:       setting.Model,
		temperature: setting.Temperature,
		client:      &http.Client{},
	}
}

func (a anthropic) chat(ctx context.Context, turns []turn) llmResponse {
	reqBody := anthropicChatRequest{
		Model:       a.model,
		Messages:    chatMessages(turns),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens(),
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var response anthropicChatResponse
	if err := postJSON(ctx, a.client, a.endpoint+"/messages", headers, reqBody, &response); err != nil {
		return llmResponse{err: err}
	}

	if len(response.Content) == 0 {
		return llmResponse{
			err: errEmptyReply,
		}
	}

	return llmResponse{
		content: response.Content[0].Text,
	}
}

func (a anthropic) maxTokens() int {
	if strings.HasPrefix(a.model, "claude-3-5-sonnet") ||
		strings.HasPrefix(a.model, "claude-3-5-haiku") {
		return 8192
	}
	return 4096
}

func (a anthropicProvider) Title() string {
	if a.isConfigured() {
		return fmt.Sprintf("%s (configured)", providerAnthropic)
	}
	return fmt.Sprintf("%s (not configured)", providerAnthropic)
}

func (a anthropicProvider) Description() string {
	return "Configure Anthropic connection"
}

func (a anthropicProvider) FilterValue() string {
	return providerAnthropic
}

func (a anthropicProvider) name() string {
	return providerAnthropic
}

func (a anthropicProvider) defaultModel() string {
	return defaultAnthropicModel
}

func (a anthropicProvider) isConfigured() bool {
	return a.APIKey != ""
}

func (a anthropicProvider) form(width, height int, keymap *huh.KeyMap) *huh.Form {
	return credentialForm("anthropic", providerAnthropic, "Enter the API key for Anthropic.", a.APIKey).
		WithWidth(width).
		WithHeight(height).
		WithKeyMap(keymap)
}

func (a anthropicProvider) saveForm(db *bolt.DB, form *huh.Form) (llmProvider, bool, error) {
	apiKey, ok := credentialFromForm("anthropic", form)
	if !ok {
		return a, false, nil
	}

	a.APIKey = apiKey

	if err := saveProviderSettings(db, "anthropic", a); err != nil {
		return a, false, fmt.Errorf("error saving anthropic settings: %w", err)
	}

	return a, true, nil
}

func (a anthropicProvider) newLLM(setting modelSetting) (llm, error) {
	return newAnthropic(a.APIKey, setting), nil
}
