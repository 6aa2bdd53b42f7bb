package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const transcriptFileName = "chat_history.txt"

// exportTranscript renders turns as "Role: content" blocks separated by blank lines.
func exportTranscript(turns []turn) string {
	caser := cases.Title(language.English)

	blocks := make([]string, len(turns))
	for i, t := range turns {
		blocks[i] = caser.String(t.Role) + ": " + t.Content
	}

	return strings.Join(blocks, "\n\n")
}

func writeTranscript(dir string, turns []turn) (string, error) {
	path := filepath.Join(dir, transcriptFileName)
	if err := os.WriteFile(path, []byte(exportTranscript(turns)), 0644); err != nil {
		return "", fmt.Errorf("error writing transcript: %w", err)
	}
	return path, nil
}
