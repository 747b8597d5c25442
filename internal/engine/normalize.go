package engine

import "strings"

// stopWords are filler words that do not count toward the noise
// filter's content-word threshold.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "it": true,
	"was": true, "this": true, "that": true, "i": true, "me": true,
	"to": true, "for": true,
}

// singleWordCommands may pass the noise filter on their own. Priority
// and date words are included so a one-word answer to a clarification
// question ("what priority?", "when?") is not discarded before the
// dialogue machine sees it.
var singleWordCommands = map[string]bool{
	"reset": true, "home": true, "stop": true,
	"high": true, "medium": true, "low": true,
	"today": true, "tomorrow": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// normalize trims the utterance and collapses internal whitespace,
// returning the cleaned original-case string and its lower-cased copy.
// Keyword tests run on the lower-cased copy; payload extraction slices
// the original so titles keep their capitalization.
func normalize(text string) (raw, lower string) {
	raw = strings.Join(strings.Fields(text), " ")
	return raw, strings.ToLower(raw)
}

// passesNoiseFilter reports whether the utterance carries enough
// signal to interpret: at least two content words, or an exact
// single-word command.
func passesNoiseFilter(raw, lower string) bool {
	if singleWordCommands[lower] {
		return true
	}
	content := 0
	for _, w := range strings.Fields(raw) {
		if !stopWords[strings.ToLower(w)] {
			content++
		}
	}
	return content >= 2
}
