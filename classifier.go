package main

import (
	"log/slog"
	"strings"
)

// languageState is the part of a session the classifier reads and writes.
type languageState struct {
	current  languageTag
	override languageTag
}

func newLanguageState() languageState {
	return languageState{current: langEnglish}
}

type classifier struct {
	profile  languageProfile
	detector detector
}

const (
	stickyWordLimit      = 3
	singleKeywordMaxSize = 5
)

func newClassifier(profile languageProfile, d detector) classifier {
	return classifier{
		profile:  profile,
		detector: d,
	}
}

// classify picks the persona for utterance and records it as the state's current
// language. priorTurns is the number of transcript turns before this utterance.
func (c classifier) classify(utterance string, state *languageState, priorTurns int) languageTag {
	tag := c.decide(utterance, *state, priorTurns)
	state.current = tag
	return tag
}

func (c classifier) decide(utterance string, state languageState, priorTurns int) languageTag {
	if state.override.valid() {
		return state.override
	}

	previous := state.current
	if !previous.valid() {
		previous = langEnglish
	}

	lower := strings.ToLower(utterance)

	if containsAny(lower, c.profile.RomanUrduMarkers) {
		return langRomanUrdu
	}
	if containsAny(lower, c.profile.RomanSindhiMarkers) {
		return langRomanSindhi
	}

	words := len(strings.Fields(utterance))

	// Short follow-ups continue the conversation's language.
	if priorTurns > 0 && words <= stickyWordLimit {
		return previous
	}

	if keywordVote(lower, c.profile.RomanSindhiKeywords, words) {
		return langRomanSindhi
	}
	if keywordVote(lower, c.profile.RomanUrduKeywords, words) {
		return langRomanUrdu
	}

	if c.detector == nil {
		return previous
	}

	code, err := c.detector.detect(utterance)
	if err != nil {
		slog.Debug("language detection failed, keeping previous language",
			"previous", previous, "error", err)
		return previous
	}

	if tag, ok := tagFromDetectedCode(code); ok {
		return tag
	}

	slog.Debug("detected language is not served", "code", code, "previous", previous)

	// previous is English whenever it is not one of the other personas.
	return previous
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// keywordVote reports whether enough keywords occur in lower: two or more, or a
// single one in a short message.
func keywordVote(lower string, keywords []string, words int) bool {
	matches := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matches++
		}
	}
	return matches >= 2 || (matches == 1 && words <= singleKeywordMaxSize)
}
