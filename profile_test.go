package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComposePrompt(t *testing.T) {
	p := defaultProfile()

	got := composePrompt(p, langEnglish, "hello")
	if !strings.Contains(got, "User message: hello") {
		t.Errorf("composePrompt() = %q, want it to contain %q", got, "User message: hello")
	}
	if !strings.HasPrefix(got, p.Instructions[langEnglish]) {
		t.Error("composePrompt() does not start with the English instruction")
	}
	if !strings.HasSuffix(got, p.Closings[langEnglish]) {
		t.Error("composePrompt() does not end with the English closing")
	}
}

func TestComposePromptPerLanguage(t *testing.T) {
	p := defaultProfile()

	for _, tag := range languageTags {
		t.Run(string(tag), func(t *testing.T) {
			got := composePrompt(p, tag, "msg")
			want := p.Instructions[tag] + "\n\nUser message: msg\n\n" + p.Closings[tag]
			if got != want {
				t.Errorf("composePrompt(%v) = %q, want %q", tag, got, want)
			}
		})
	}
}

func TestComposePromptUnknownTag(t *testing.T) {
	p := defaultProfile()

	got := composePrompt(p, languageTag("fr"), "bonjour")
	want := composePrompt(p, langEnglish, "bonjour")
	if got != want {
		t.Errorf("composePrompt(unknown) = %q, want the English prompt", got)
	}
}

func TestDefaultProfileIsValid(t *testing.T) {
	if err := defaultProfile().validate(); err != nil {
		t.Errorf("defaultProfile().validate() error = %v", err)
	}
}

func TestLoadProfile(t *testing.T) {
	tempDir := t.TempDir()

	valid := defaultProfile()
	valid.Name = "custom"
	valid.RomanUrduMarkers = []string{"KAISE HO"}

	missingTag := defaultProfile()
	delete(missingTag.Closings, langSindhi)

	noMarkers := defaultProfile()
	noMarkers.RomanSindhiMarkers = nil

	tests := []struct {
		name    string
		profile *languageProfile
		raw     string
		wantErr bool
	}{
		{"Valid", &valid, "", false},
		{"Missing closing", &missingTag, "", true},
		{"Missing markers", &noMarkers, "", true},
		{"Malformed JSON", nil, "{not json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.raw)
			if tt.profile != nil {
				var err error
				data, err = json.Marshal(tt.profile)
				if err != nil {
					t.Fatalf("Failed to marshal profile: %v", err)
				}
			}

			path := filepath.Join(tempDir, strings.ReplaceAll(tt.name, " ", "_")+".json")
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatalf("Failed to write profile: %v", err)
			}

			got, err := loadProfile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadProfile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if got.Name != "custom" {
				t.Errorf("loadProfile() name = %q, want %q", got.Name, "custom")
			}
			if got.RomanUrduMarkers[0] != "kaise ho" {
				t.Errorf("loadProfile() did not lower-case markers: %q", got.RomanUrduMarkers[0])
			}
		})
	}
}

func TestLoadProfileDefaults(t *testing.T) {
	got, err := loadProfile("")
	if err != nil {
		t.Fatalf("loadProfile(\"\") error = %v", err)
	}
	if got.Name != defaultProfile().Name {
		t.Errorf("loadProfile(\"\") name = %q, want the default profile", got.Name)
	}

	if _, err := loadProfile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loadProfile(missing file) error = nil, want error")
	}
}
