package main

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type archivedConversation struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Archived time.Time `json:"archived"`

	Turns []turn `json:"turns"`
}

// chatSession is the live state of one interactive client. The event loop owns it
// and every mutation goes through its methods.
type chatSession struct {
	id string

	transcript   []turn
	archive      []archivedConversation
	lang         languageState
	turnInFlight bool

	// turnSeq identifies the outstanding turn; replies for older turns are dropped.
	turnSeq int
	convo   conversation

	profile    languageProfile
	classifier classifier
	completer  completer

	logger *slog.Logger
}

// pendingTurn is everything the background send needs. It never touches the session.
type pendingTurn struct {
	seq      int
	language languageTag
	prompt   string
	convo    conversation
}

const (
	archiveTitleLength  = 20
	defaultArchiveTitle = "New Chat"
)

func newChatSession(profile languageProfile, d detector, c completer) *chatSession {
	id := uuid.NewString()
	return &chatSession{
		id:         id,
		lang:       newLanguageState(),
		profile:    profile,
		classifier: newClassifier(profile, d),
		completer:  c,
		logger:     slog.Default().With("session", id),
	}
}

// setCompleter swaps the provider. The conversation handle is dropped so the next
// turn rebuilds it from the transcript.
func (s *chatSession) setCompleter(c completer) {
	s.completer = c
	s.convo = nil
}

// beginTurn records the user's message and prepares the outbound prompt. It returns
// errTurnInFlight or errEmptyMessage without touching the session.
func (s *chatSession) beginTurn(text string) (pendingTurn, error) {
	if s.turnInFlight {
		return pendingTurn{}, errTurnInFlight
	}
	if strings.TrimSpace(text) == "" {
		return pendingTurn{}, errEmptyMessage
	}
	if s.completer == nil {
		return pendingTurn{}, errConfiguration
	}

	if s.convo == nil {
		convo, err := s.completer.startConversation(s.transcript)
		if err != nil {
			return pendingTurn{}, err
		}
		s.convo = convo
	}

	s.turnInFlight = true
	s.turnSeq++

	priorTurns := len(s.transcript)
	s.transcript = append(s.transcript, turn{
		Role:      roleUser,
		Content:   text,
		Timestamp: time.Now(),
	})

	tag := s.classifier.classify(text, &s.lang, priorTurns)

	s.logger.Info("turn started",
		"seq", s.turnSeq, "language", tag, "locale", tag.bcp47().String(), "provider", s.completer.name())

	return pendingTurn{
		seq:      s.turnSeq,
		language: tag,
		prompt:   composePrompt(s.profile, tag, text),
		convo:    s.convo,
	}, nil
}

// endTurn applies the outcome of a send and releases the latch. A failed send
// leaves the user's turn in place without an assistant reply.
func (s *chatSession) endTurn(p pendingTurn, reply string, err error) error {
	if !s.turnInFlight || p.seq != s.turnSeq {
		s.logger.Debug("dropping reply of an inactive turn", "seq", p.seq)
		return errStaleTurn
	}
	s.turnInFlight = false

	if err != nil {
		s.logger.Error("turn failed", "seq", p.seq, "error", err)
		return err
	}

	s.transcript = append(s.transcript, turn{
		Role:      roleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	})
	s.logger.Info("turn completed", "seq", p.seq, "language", p.language)

	return nil
}

// submitUserTurn runs a whole turn synchronously.
func (s *chatSession) submitUserTurn(ctx context.Context, text string) error {
	p, err := s.beginTurn(text)
	if err != nil {
		return err
	}
	defer func() {
		if s.turnSeq == p.seq {
			s.turnInFlight = false
		}
	}()

	reply, err := p.convo.send(ctx, p.prompt)
	return s.endTurn(p, reply, err)
}

// startNewChat archives a non-empty transcript and starts over. The language state
// is kept.
func (s *chatSession) startNewChat() {
	if len(s.transcript) > 0 {
		s.archive = append(s.archive, archivedConversation{
			ID:       uuid.NewString(),
			Name:     archiveTitle(s.transcript),
			Archived: time.Now(),
			Turns:    slices.Clone(s.transcript),
		})
		s.logger.Info("conversation archived", "turns", len(s.transcript), "archived", len(s.archive))
	}

	s.transcript = nil
	s.convo = nil
	s.turnInFlight = false
}

// restoreArchivedChat replaces the transcript with a copy of an archived one.
// It reports false, changing nothing, when index is out of range.
func (s *chatSession) restoreArchivedChat(index int) bool {
	if index < 0 || index >= len(s.archive) {
		return false
	}

	s.transcript = slices.Clone(s.archive[index].Turns)
	s.convo = nil
	s.turnInFlight = false

	return true
}

func (s *chatSession) setLanguageOverride(tag languageTag) {
	if !tag.valid() {
		return
	}
	s.lang.override = tag
}

func (s *chatSession) clearLanguageOverride() {
	s.lang.override = ""
}

func (s *chatSession) currentLanguage() languageTag {
	return s.lang.current
}

func (s *chatSession) languageOverride() (languageTag, bool) {
	return s.lang.override, s.lang.override.valid()
}

func archiveTitle(turns []turn) string {
	content := turns[0].Content
	if content == "" {
		return defaultArchiveTitle
	}

	runes := []rune(content)
	if len(runes) > archiveTitleLength {
		runes = runes[:archiveTitleLength]
	}
	return string(runes) + "..."
}

func (a archivedConversation) Title() string {
	return a.Name
}

func (a archivedConversation) Description() string {
	return a.Archived.Format(time.RFC1123)
}

func (a archivedConversation) FilterValue() string {
	return a.Name
}
