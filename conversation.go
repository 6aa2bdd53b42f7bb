package main

import (
	"context"
	"slices"
	"strings"
	"time"
)

type llmResponse struct {
	content string
	err     error
}

// llm is a stateless chat call against one provider and model.
type llm interface {
	chat(context.Context, []turn) llmResponse
}

// conversation is the provider-side handle of one chat. It is rebuilt from the
// transcript whenever the session drops it.
type conversation interface {
	send(ctx context.Context, prompt string) (string, error)
}

type completer interface {
	name() string
	startConversation(history []turn) (conversation, error)
}

type llmCompleter struct {
	provider string
	llm      llm
}

// historyConversation keeps the exchange as the provider saw it: composed prompts
// and replies, seeded with the transcript that existed when it was started.
type historyConversation struct {
	provider string
	llm      llm
	history  []turn
}

func newLLMCompleter(provider string, l llm) llmCompleter {
	return llmCompleter{
		provider: provider,
		llm:      l,
	}
}

func (c llmCompleter) name() string {
	return c.provider
}

func (c llmCompleter) startConversation(history []turn) (conversation, error) {
	return &historyConversation{
		provider: c.provider,
		llm:      c.llm,
		history:  slices.Clone(history),
	}, nil
}

func (c *historyConversation) send(ctx context.Context, prompt string) (string, error) {
	msgs := append(slices.Clone(c.history), turn{
		Role:      roleUser,
		Content:   prompt,
		Timestamp: time.Now(),
	})

	res := c.llm.chat(ctx, msgs)
	if res.err != nil {
		return "", &providerError{provider: c.provider, err: res.err}
	}
	if strings.TrimSpace(res.content) == "" {
		return "", &providerError{provider: c.provider, err: errEmptyReply}
	}

	c.history = append(msgs, turn{
		Role:      roleAssistant,
		Content:   res.content,
		Timestamp: time.Now(),
	})

	return res.content, nil
}
