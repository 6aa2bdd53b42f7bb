package main

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

type detector interface {
	detect(text string) (string, error)
}

// Letters that only appear in one of the Arabic-script languages we serve. The
// trigram model does not know Sindhi and often confuses Urdu with Persian.
const (
	sindhiLetters = "ڪٿٽڊڏڌڍڙڳڱڻڄڃٻڀڦڇٺ"
	urduLetters   = "ٹڈڑںےۓ"
)

// whatlangDetector is a deterministic trigram detector. It holds no random state,
// so the same input always yields the same result.
type whatlangDetector struct{}

func newWhatlangDetector() whatlangDetector {
	return whatlangDetector{}
}

func (whatlangDetector) detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errDetection
	}

	if strings.ContainsAny(text, sindhiLetters) {
		return "sd", nil
	}
	if strings.ContainsAny(text, urduLetters) {
		return "ur", nil
	}

	info := whatlanggo.Detect(text)
	if info.Script == nil || info.Confidence == 0 {
		return "", errDetection
	}

	code := info.Lang.Iso6391()
	if code == "" {
		return "", errDetection
	}

	return code, nil
}
