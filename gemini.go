package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	bolt "go.etcd.io/bbolt"
	"google.golang.org/genai"
)

type geminiProvider struct {
	APIKey string `json:"apiKey"`
}

type gemini struct {
	model       string
	temperature float64

	client *genai.Client
}

const defaultGeminiModel = "gemini-2.5-flash"

func (g gemini) chat(ctx context.Context, turns []turn) llmResponse {
	contents := make([]*genai.Content, len(turns))
	for i, t := range turns {
		contents[i] = genai.NewContentFromText(t.Content, geminiRole(t.Role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(g.temperature)),
	})
	if err != nil {
		return llmResponse{
			err: fmt.Errorf("error generating content: %w", err),
		}
	}

	return llmResponse{
		content: strings.TrimSpace(resp.Text()),
	}
}

func geminiRole(role string) genai.Role {
	if role == roleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func (g geminiProvider) Title() string {
	if g.isConfigured() {
		return fmt.Sprintf("%s (configured)", providerGemini)
	}
	return fmt.Sprintf("%s (not configured)", providerGemini)
}

func (g geminiProvider) Description() string {
	return "Configure Google Gemini connection"
}

func (g geminiProvider) FilterValue() string {
	return providerGemini
}

func (g geminiProvider) name() string {
	return providerGemini
}

func (g geminiProvider) defaultModel() string {
	return defaultGeminiModel
}

func (g geminiProvider) isConfigured() bool {
	return g.APIKey != ""
}

func (g geminiProvider) form(width, height int, keymap *huh.KeyMap) *huh.Form {
	return credentialForm("gemini", providerGemini, "Enter the API key for Google Gemini.", g.APIKey).
		WithWidth(width).
		WithHeight(height).
		WithKeyMap(keymap)
}

func (g geminiProvider) saveForm(db *bolt.DB, form *huh.Form) (llmProvider, bool, error) {
	apiKey, ok := credentialFromForm("gemini", form)
	if !ok {
		return g, false, nil
	}

	g.APIKey = apiKey

	if err := saveProviderSettings(db, "gemini", g); err != nil {
		return g, false, fmt.Errorf("error saving gemini settings: %w", err)
	}

	return g, true, nil
}

func (g geminiProvider) newLLM(setting modelSetting) (llm, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  g.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	return gemini{
		model:       setting.Model,
		temperature: setting.Temperature,
		client:      client,
	}, nil
}
