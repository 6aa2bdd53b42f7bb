package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
)

func TestAnthropicChat(t *testing.T) {
	var got anthropicChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("request path = %q, want /messages", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(anthropicChatResponse{
			Content: []anthropicContent{{Text: "Salaam!"}},
		})
	}))
	defer server.Close()

	a := newAnthropic("test-key", modelSetting{Model: defaultAnthropicModel, Temperature: 0.5})
	a.endpoint = server.URL

	res := a.chat(context.Background(), []turn{{Role: roleUser, Content: "hello"}})
	if res.err != nil {
		t.Fatalf("chat() error = %v", res.err)
	}
	if res.content != "Salaam!" {
		t.Errorf("chat() content = %q, want %q", res.content, "Salaam!")
	}
	if got.Model != defaultAnthropicModel || len(got.Messages) != 1 || got.MaxTokens != 8192 {
		t.Errorf("request = %+v", got)
	}
}

func TestAnthropicChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"error":"invalid key"}`, nil},
		{"Empty content", http.StatusOK, `{"content":[]}`, errEmptyReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			a := newAnthropic("test-key", modelSetting{Model: defaultAnthropicModel})
			a.endpoint = server.URL

			res := a.chat(context.Background(), []turn{{Role: roleUser, Content: "hello"}})
			if res.err == nil {
				t.Fatal("chat() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(res.err, tt.wantErr) {
				t.Errorf("chat() error = %v, want %v", res.err, tt.wantErr)
			}
		})
	}
}

func TestOllamaChat(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("request path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: chatMessage{Role: roleAssistant, Content: "Hello!"},
			Done:    true,
		})
	}))
	defer server.Close()

	l, err := ollamaProvider{Host: server.URL}.newLLM(modelSetting{Model: "llama3.2", Temperature: 0.3})
	if err != nil {
		t.Fatalf("newLLM() error = %v", err)
	}

	res := l.chat(context.Background(), []turn{
		{Role: roleUser, Content: "hi"},
		{Role: roleAssistant, Content: "hello"},
		{Role: roleUser, Content: "how are you"},
	})
	if res.err != nil {
		t.Fatalf("chat() error = %v", res.err)
	}
	if res.content != "Hello!" {
		t.Errorf("chat() content = %q, want %q", res.content, "Hello!")
	}
	if got.Stream || len(got.Messages) != 3 || got.Options.Temperature != 0.3 {
		t.Errorf("request = %+v", got)
	}
}

func TestOllamaChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"Model not found", http.StatusNotFound, `{"error":"model \"nope\" not found"}`, nil},
		{"Malformed body", http.StatusOK, `not json`, nil},
		{"Empty message", http.StatusOK, `{"model":"llama3.2","message":{"role":"assistant","content":""},"done":true}`, errEmptyReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			o := newOllama(server.URL, modelSetting{Model: defaultOllamaModel})

			res := o.chat(context.Background(), []turn{{Role: roleUser, Content: "hello"}})
			if res.err == nil {
				t.Fatal("chat() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(res.err, tt.wantErr) {
				t.Errorf("chat() error = %v, want %v", res.err, tt.wantErr)
			}
		})
	}
}

func TestPostJSONHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test = %q, want yes", got)
		}
		_, _ = w.Write([]byte(`{"role":"assistant","content":"ok"}`))
	}))
	defer server.Close()

	var got chatMessage
	err := postJSON(context.Background(), server.Client(), server.URL, map[string]string{"X-Test": "yes"},
		chatMessage{Role: roleUser, Content: "hi"}, &got)
	if err != nil {
		t.Fatalf("postJSON() error = %v", err)
	}
	if got.Content != "ok" {
		t.Errorf("postJSON() decoded = %+v", got)
	}
}

func TestOpenAIChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("request path = %q, want /chat/completions", r.URL.Path)
		}
		var req goopenai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []goopenai.ChatCompletionChoice{
				{Message: goopenai.ChatCompletionMessage{Role: roleAssistant, Content: "Hi there!"}},
			},
		})
	}))
	defer server.Close()

	cfg := goopenai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	o := newOpenAI(cfg, modelSetting{Model: defaultOpenAIModel, Temperature: 0.7})

	res := o.chat(context.Background(), []turn{{Role: roleUser, Content: "hello"}})
	if res.err != nil {
		t.Fatalf("chat() error = %v", res.err)
	}
	if res.content != "Hi there!" {
		t.Errorf("chat() content = %q, want %q", res.content, "Hi there!")
	}
}

type stubLLM struct {
	res   llmResponse
	turns []turn
}

func (s *stubLLM) chat(_ context.Context, turns []turn) llmResponse {
	s.turns = turns
	return s.res
}

func TestHistoryConversation(t *testing.T) {
	l := &stubLLM{res: llmResponse{content: "reply"}}
	c := newLLMCompleter("stub", l)

	seed := []turn{
		{Role: roleUser, Content: "earlier"},
		{Role: roleAssistant, Content: "earlier reply"},
	}
	convo, err := c.startConversation(seed)
	if err != nil {
		t.Fatalf("startConversation() error = %v", err)
	}

	got, err := convo.send(context.Background(), "composed prompt")
	if err != nil {
		t.Fatalf("send() error = %v", err)
	}
	if got != "reply" {
		t.Errorf("send() = %q, want %q", got, "reply")
	}
	if len(l.turns) != 3 || l.turns[2].Content != "composed prompt" {
		t.Errorf("llm saw %+v, want the seed plus the prompt", l.turns)
	}

	if _, err := convo.send(context.Background(), "second prompt"); err != nil {
		t.Fatalf("send() error = %v", err)
	}
	if len(l.turns) != 5 {
		t.Errorf("llm saw %d turns on the second send, want 5", len(l.turns))
	}

	seed[0].Content = "mutated"
	if l.turns[0].Content != "earlier" {
		t.Error("conversation history aliases the seed transcript")
	}
}

func TestHistoryConversationErrors(t *testing.T) {
	tests := []struct {
		name    string
		res     llmResponse
		wantErr error
	}{
		{"Provider failure", llmResponse{err: errors.New("503")}, nil},
		{"Empty reply", llmResponse{content: "  "}, errEmptyReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &stubLLM{res: tt.res}
			convo, _ := newLLMCompleter("stub", l).startConversation(nil)

			_, err := convo.send(context.Background(), "prompt")

			var pe *providerError
			if !errors.As(err, &pe) {
				t.Fatalf("send() error = %v, want providerError", err)
			}
			if pe.provider != "stub" {
				t.Errorf("providerError.provider = %q, want stub", pe.provider)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("send() error = %v, want %v", err, tt.wantErr)
			}

			// A failed send leaves the history untouched.
			l.res = llmResponse{content: "ok"}
			if _, err := convo.send(context.Background(), "again"); err != nil {
				t.Fatalf("send() error = %v", err)
			}
			if len(l.turns) != 1 {
				t.Errorf("llm saw %d turns after a failure, want 1", len(l.turns))
			}
		})
	}
}

func TestCompleterFromSetting(t *testing.T) {
	providers := []llmProvider{
		geminiProvider{},
		openaiProvider{APIKey: "openai-key"},
		anthropicProvider{},
		ollamaProvider{Host: defaultOllamaHost},
	}

	tests := []struct {
		name     string
		setting  modelSetting
		wantName string
		wantErr  error
	}{
		{"Configured provider", modelSetting{Provider: providerOpenAI}, providerOpenAI, nil},
		{"Case-insensitive name", modelSetting{Provider: "ollama"}, providerOllama, nil},
		{"Missing credential", modelSetting{Provider: providerAnthropic}, "", errConfiguration},
		{"Unknown provider", modelSetting{Provider: "Mistral"}, "", errConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := completerFromSetting(tt.setting, providers)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("completerFromSetting() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("completerFromSetting() error = %v", err)
			}
			if c.name() != tt.wantName {
				t.Errorf("completerFromSetting() name = %q, want %q", c.name(), tt.wantName)
			}
		})
	}
}

func TestLoadLLMProviders(t *testing.T) {
	db, tempDir := setupTestDB(t)
	defer os.RemoveAll(tempDir)
	defer db.Close()

	if err := saveProviderSettings(db, "openai", openaiProvider{APIKey: "saved-key"}); err != nil {
		t.Fatalf("saveProviderSettings() error = %v", err)
	}

	cfg := config{
		Provider:        "ollama",
		GeminiAPIKey:    "env-gemini",
		OpenAIAPIKey:    "env-openai",
		AnthropicAPIKey: "",
	}

	providers, err := loadLLMProviders(db, cfg)
	if err != nil {
		t.Fatalf("loadLLMProviders() error = %v", err)
	}
	if len(providers) != 4 {
		t.Fatalf("loadLLMProviders() returned %d providers, want 4", len(providers))
	}

	if g := providers[0].(geminiProvider); g.APIKey != "env-gemini" {
		t.Errorf("gemini key = %q, want the environment value", g.APIKey)
	}
	if o := providers[1].(openaiProvider); o.APIKey != "saved-key" {
		t.Errorf("openai key = %q, want the saved value", o.APIKey)
	}
	if providers[2].isConfigured() {
		t.Error("anthropic is configured without a key")
	}
	if o := providers[3].(ollamaProvider); o.Host != defaultOllamaHost {
		t.Errorf("ollama host = %q, want %q", o.Host, defaultOllamaHost)
	}
}

func TestValidateTemperature(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0", false},
		{"0.7", false},
		{" 2 ", false},
		{"2.1", true},
		{"-1", true},
		{"warm", true},
	}

	for _, tt := range tests {
		if err := validateTemperature(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validateTemperature(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
