// Package fortune picks, wraps and prints Zoltar's fortunes.
package fortune

import (
	_ "embed"
	"math/rand"
	"strings"
)

// LineLimit is the printer's width in medium text.
const LineLimit = 28

const Prefix = "Zoltar says: "

//go:embed fortunes.txt
var fortunesTxt string

// All is the built-in fortune list, one per line of fortunes.txt.
var All = Parse(fortunesTxt)

// Parse splits text into fortunes, skipping blank lines and # comments.
func Parse(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Pick returns a random entry of list, or "" if it is empty.
func Pick(r *rand.Rand, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[r.Intn(len(list))]
}

// Wrap breaks text into lines of at most limit characters at spaces. Words
// longer than limit are split.
func Wrap(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, w := range strings.Fields(text) {
		word := []rune(w)
		for len(word) > limit {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(word[:limit]))
			word = word[limit:]
		}
		switch {
		case len(word) == 0:
		case len(cur) == 0:
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= limit:
			cur = append(append(cur, ' '), word...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), word...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

// Lines is a fortune as printed: prefixed and wrapped to LineLimit.
func Lines(f string) []string {
	return Wrap(Prefix+f, LineLimit)
}
