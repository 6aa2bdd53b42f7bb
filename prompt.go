package main

// composePrompt builds the outbound text for one turn. Tags without a template use
// the English one.
func composePrompt(profile languageProfile, tag languageTag, message string) string {
	instruction, ok := profile.Instructions[tag]
	closing := profile.Closings[tag]
	if !ok {
		instruction = profile.Instructions[langEnglish]
		closing = profile.Closings[langEnglish]
	}

	return instruction + "\n\nUser message: " + message + "\n\n" + closing
}
