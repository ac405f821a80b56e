// Package namematch turns canonical player names into letter-count hints and
// evaluates free-text guesses against them. All operations are pure functions
// of their inputs aside from two bounded memoization caches.
package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const memoCapacity = 1000

var (
	normalizeMemo = newMemo(memoCapacity)
	hintMemo      = newMemo(memoCapacity)
)

// surnamePrefixes is the closed set of lowercase particles that start a
// compound surname.
var surnamePrefixes = map[string]struct{}{
	"de": {}, "van": {}, "von": {}, "del": {}, "della": {},
	"di": {}, "da": {}, "le": {}, "la": {}, "el": {}, "al": {},
	"dos": {}, "das": {}, "mac": {}, "mc": {},
}

// Normalize decomposes the input, strips combining diacritical marks,
// lowercases, and trims surrounding whitespace. It is idempotent.
func Normalize(s string) string {
	if cached, ok := normalizeMemo.get(s); ok {
		return cached
	}

	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, s)
	if err != nil {
		stripped = s
	}
	out := strings.TrimSpace(strings.ToLower(stripped))

	normalizeMemo.put(s, out)
	return out
}

// LastName extracts the surname from a full name, keeping common European
// compound particles attached ("Matthijs de Ligt" -> "de Ligt",
// "Edwin van der Sar" -> "van der Sar"). The three-token rule is a heuristic
// preserved from observed behavior, not a linguistic one; uncommon names may
// misclassify.
func LastName(fullName string) string {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return strings.TrimSpace(fullName)
	}
	if len(tokens) == 1 {
		return tokens[0]
	}

	n := len(tokens)
	second := strings.ToLower(tokens[n-2])
	_, secondIsPrefix := surnamePrefixes[second]

	if n >= 3 {
		third := strings.ToLower(tokens[n-3])
		if _, thirdIsPrefix := surnamePrefixes[third]; thirdIsPrefix {
			if secondIsPrefix || second == "der" || second == "den" {
				return strings.Join(tokens[n-3:], " ")
			}
		}
	}

	if secondIsPrefix {
		return strings.Join(tokens[n-2:], " ")
	}

	return tokens[n-1]
}

// IsMatch reports whether a free-text guess names the player. The guess must
// equal the normalized last name, or, for compound surnames, its final token
// alone ("ligt" matches "Matthijs de Ligt"). First names never match and no
// fuzzy or substring matching is applied.
func IsMatch(guess, actualFullName string) bool {
	normalizedGuess := Normalize(guess)
	if normalizedGuess == "" {
		return false
	}

	lastName := Normalize(LastName(actualFullName))
	if normalizedGuess == lastName {
		return true
	}

	if parts := strings.Fields(lastName); len(parts) > 1 {
		return normalizedGuess == parts[len(parts)-1]
	}

	return false
}

// LetterHint renders the surname's letter-count skeleton: hyphens,
// apostrophes, and periods stay visible, every other character becomes an
// underscore. Length and character positions are preserved exactly.
func LetterHint(fullName string) string {
	if cached, ok := hintMemo.get(fullName); ok {
		return cached
	}

	lastName := LastName(fullName)
	var b strings.Builder
	b.Grow(len(lastName))
	for _, r := range lastName {
		switch r {
		case '-', '\'', '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	hint := b.String()

	hintMemo.put(fullName, hint)
	return hint
}

// ResetMemos drops both memoization caches. Observable behavior is unchanged.
func ResetMemos() {
	normalizeMemo.clear()
	hintMemo.clear()
}
