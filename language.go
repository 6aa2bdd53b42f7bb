package main

import (
	"fmt"

	"golang.org/x/text/language"
)

// languageTag names one of the supported language/dialect personas.
type languageTag string

const (
	langEnglish     languageTag = "en"
	langUrdu        languageTag = "ur"
	langSindhi      languageTag = "sd"
	langRomanUrdu   languageTag = "roman_ur"
	langRomanSindhi languageTag = "roman_sd"
)

var languageTags = []languageTag{
	langEnglish,
	langUrdu,
	langSindhi,
	langRomanUrdu,
	langRomanSindhi,
}

func parseLanguageTag(s string) (languageTag, bool) {
	t := languageTag(s)
	return t, t.valid()
}

func (t languageTag) valid() bool {
	switch t {
	case langEnglish, langUrdu, langSindhi, langRomanUrdu, langRomanSindhi:
		return true
	}
	return false
}

func (t languageTag) displayName() string {
	switch t {
	case langEnglish:
		return "English"
	case langUrdu:
		return "Urdu"
	case langSindhi:
		return "Sindhi"
	case langRomanUrdu:
		return "Roman Urdu"
	case langRomanSindhi:
		return "Roman Sindhi"
	}
	return string(t)
}

// bcp47 returns the BCP 47 tag of the persona. Roman variants are the Latin-script
// forms of their base language.
func (t languageTag) bcp47() language.Tag {
	switch t {
	case langUrdu:
		return language.Urdu
	case langSindhi:
		return language.Make("sd")
	case langRomanUrdu:
		return language.Make("ur-Latn")
	case langRomanSindhi:
		return language.Make("sd-Latn")
	}
	return language.English
}

// label names the persona together with its BCP 47 tag, e.g. "Roman Urdu (ur-Latn)".
func (t languageTag) label() string {
	return fmt.Sprintf("%s (%s)", t.displayName(), t.bcp47())
}

// tagFromDetectedCode maps a statistical detector result onto a persona. Hindi is
// served by the Urdu persona.
func tagFromDetectedCode(code string) (languageTag, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()

	switch base.String() {
	case "en":
		return langEnglish, true
	case "ur", "hi":
		return langUrdu, true
	case "sd":
		return langSindhi, true
	}
	return "", false
}
