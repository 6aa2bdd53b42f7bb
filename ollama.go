package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/huh"
	bolt "go.etcd.io/bbolt"
)

type ollamaProvider struct {
	Host string `json:"host"`
}

type ollama struct {
	host        string
	model       string
	temperature float64

	client *http.Client
}

type ollamaChatRequest struct {
	Model    string                  `json:"model"`
	Messages []chatMessage           `json:"messages"`
	Stream   bool                    `json:"stream"`
	Options  ollamaChatRequestOption `json:"options"`
}

type ollamaChatRequestOption struct {
	Temperature float64 `json:"temperature"`
}

type ollamaChatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

const (
	defaultOllamaHost  = "http://127.0.0.1:11434"
	defaultOllamaModel = "llama3.2"
)

func newOllama(host string, setting modelSetting) ollama {
	return ollama{
		host:        host,
		model:       setting.Model,
		temperature: setting.Temperature,
		client:      &http.Client{},
	}
}

func (o ollama) chat(ctx context.Context, turns []turn) llmResponse {
	reqBody := ollamaChatRequest{
		Model:    o.model,
		Messages: chatMessages(turns),
		Stream:   false,
		Options: ollamaChatRequestOption{
			Temperature: o.temperature,
		},
	}

	var response ollamaChatResponse
	if err := postJSON(ctx, o.client, o.host+"/api/chat", nil, reqBody, &response); err != nil {
		return llmResponse{err: err}
	}

	if response.Message.Content == "" {
		return llmResponse{
			err: errEmptyReply,
		}
	}

	return llmResponse{
		content: response.Message.Content,
	}
}

func (o ollamaProvider) Title() string {
	if o.isConfigured() {
		return fmt.Sprintf("%s (configured)", providerOllama)
	}
	return fmt.Sprintf("%s (not configured)", providerOllama)
}

func (o ollamaProvider) Description() string {
	return "Configure Ollama connection"
}

func (o ollamaProvider) FilterValue() string {
	return providerOllama
}

func (o ollamaProvider) name() string {
	return providerOllama
}

func (o ollamaProvider) defaultModel() string {
	return defaultOllamaModel
}

func (o ollamaProvider) isConfigured() bool {
	return o.Host != ""
}

func (o ollamaProvider) form(width, height int, keymap *huh.KeyMap) *huh.Form {
	host := o.Host
	if host == "" {
		host = defaultOllamaHost
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("ollamaHost").
				Title("Host").
				Description("Enter the host for ollama.").
				Placeholder("Host").
				Value(&host),
			huh.NewConfirm().
				Key("ollamaConfirm").
				Title("Confirm").
				Description("Save this ollama settings?").
				Affirmative("Yes").
				Negative("Back"),
		),
	).
		WithWidth(width).
		WithHeight(height).
		WithTheme(huh.ThemeCatppuccin()).
		WithKeyMap(keymap).
		WithShowErrors(true).
		WithShowHelp(true)
}

func (o ollamaProvider) saveForm(db *bolt.DB, form *huh.Form) (llmProvider, bool, error) {
	if !form.GetBool("ollamaConfirm") {
		return o, false, nil
	}

	host := form.GetString("ollamaHost")
	if host == "" {
		return o, false, nil
	}

	o.Host = host

	if err := saveProviderSettings(db, "ollama", o); err != nil {
		return o, false, fmt.Errorf("error saving ollama settings: %w", err)
	}

	return o, true, nil
}

func (o ollamaProvider) newLLM(setting modelSetting) (llm, error) {
	return newOllama(o.Host, setting), nil
}
