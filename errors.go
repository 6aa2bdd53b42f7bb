package main

import (
	"errors"
	"fmt"
)

var (
	// errConfiguration is returned when the selected provider has no credential.
	errConfiguration = errors.New("provider is not configured")

	// errDetection is returned by a detector that cannot reliably name a language.
	errDetection = errors.New("could not reliably detect language")

	errTurnInFlight = errors.New("a message is already being answered")
	errEmptyMessage = errors.New("message is empty")
	errStaleTurn    = errors.New("reply belongs to a conversation that is no longer active")
	errEmptyReply   = errors.New("empty response content")
)

// providerError wraps any failure of the completion API: network, auth, quota or
// a malformed response.
type providerError struct {
	provider string
	err      error
}

func (e *providerError) Error() string {
	return fmt.Sprintf("%s: %v", e.provider, e.err)
}

func (e *providerError) Unwrap() error {
	return e.err
}
