package domain

import "strings"

// maxSuggestions is the most choices Discord accepts in an autocomplete response.
const maxSuggestions = 25

var phrases = []string{
	"hello",
	"hello world",
	"ping",
	"pong",
	"good morning",
	"good night",
}

// Suggest returns known phrases starting with prefix, case-insensitively.
func Suggest(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	suggestions := make([]string, 0)
	for _, p := range phrases {
		if strings.HasPrefix(p, prefix) {
			suggestions = append(suggestions, p)
		}
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
