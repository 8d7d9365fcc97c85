// Package nlp turns free-text capture ("buy milk, eggs and coffee") into
// normalized item names and assigns each name a store category. Everything in
// this package is a pure function of its input; there is no learning or
// shared state between calls.
package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// andSeparator matches the standalone word "and" used as a list separator.
var andSeparator = regexp.MustCompile(`(?i)\band\b`)

// actionVerbs are leading capture verbs stripped from fragments. "pick" is
// followed by an optional "up".
var actionVerbs = map[string]struct{}{
	"buy":  {},
	"get":  {},
	"add":  {},
	"grab": {},
	"need": {},
	"pick": {},
}

// SplitItems splits free text into an ordered list of normalized item names.
// Commas and the word "and" are treated as list separators. Each fragment is
// stripped of a leading action verb and leading quantity tokens, then
// title-cased. Fragments that are empty after stripping (including
// digit-only fragments) are silently dropped; this is a deliberate
// simplification, not a complete parser.
func SplitItems(text string) []string {
	normalized := andSeparator.ReplaceAllString(text, ",")

	var items []string
	for _, fragment := range strings.Split(normalized, ",") {
		name := NormalizeName(stripLeadingTokens(fragment))
		if name == "" {
			continue
		}
		items = append(items, name)
	}

	return items
}

// NormalizeName trims surrounding whitespace and title-cases an item name.
// Returns the empty string when nothing remains.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	return cases.Title(language.English).String(trimmed)
}

// stripLeadingTokens removes a leading action verb followed by any leading
// quantity tokens (an integer or the articles "a"/"an") from the fragment.
func stripLeadingTokens(fragment string) string {
	tokens := strings.Fields(fragment)

	i := 0
	if i < len(tokens) {
		verb := strings.ToLower(tokens[i])
		if _, ok := actionVerbs[verb]; ok {
			i++
			if verb == "pick" && i < len(tokens) && strings.EqualFold(tokens[i], "up") {
				i++
			}
		}
	}

	for i < len(tokens) {
		tok := strings.ToLower(tokens[i])
		if tok != "a" && tok != "an" && !isInteger(tok) {
			break
		}
		i++
	}

	return strings.Join(tokens[i:], " ")
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)

	return err == nil
}
