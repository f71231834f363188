// Package render derives display artifacts (HTML annotation views, TSV
// token streams, plain text) from canonical message bodies.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Pipeline constants. wrapThreshold is the prose-reflow heuristic: a
// line shorter than this is a paragraph end, a longer one a
// mid-paragraph wrap.
const (
	quoteMarker        = ">"
	signatureDelimiter = "--"
	wrapThreshold      = 65
)

// Segmenter is the locale-specific sentence-boundary capability injected
// into the renderers. It splits one reflowed line into sentences.
type Segmenter interface {
	Sentences(line string) []string
}

// Sentences runs a message body through the shared sentence pipeline:
// line split, quote and blank filtering, signature truncation, inline
// markup normalization, reflow, and sentence segmentation. All three
// renderers use this exact pipeline; any divergence between them is a
// defect.
func Sentences(body string, seg Segmenter) []string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, quoteMarker) {
			continue
		}
		kept = append(kept, line)
	}

	var reflowed []string
	for _, line := range kept {
		// Everything from the signature delimiter on is discarded,
		// including any non-signature content below it.
		if strings.HasPrefix(line, signatureDelimiter) {
			break
		}

		line = strings.ReplaceAll(line, "<br>", "<br>\n")
		line = strings.ReplaceAll(line, "</p>", "</p>\n")

		if utf8.RuneCountInString(line) < wrapThreshold {
			line += "\n"
		} else {
			line += " "
		}

		reflowed = append(reflowed, line)
	}

	var sentences []string
	for _, line := range strings.Split(strings.Join(reflowed, ""), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sentences = append(sentences, seg.Sentences(line)...)
	}

	return sentences
}

// RuleSegmenter is a rule-based sentence segmenter. It is a stand-in for
// a trained model: sentences end at a terminal punctuation run followed
// by whitespace, except after single-letter initials ("M. Dupont").
type RuleSegmenter struct {
	tag language.Tag
}

// NewSegmenter returns a rule-based segmenter for the given locale.
// The tag currently only records provenance; segmentation rules are
// shared across Latin-script locales.
func NewSegmenter(tag language.Tag) *RuleSegmenter {
	return &RuleSegmenter{tag: tag}
}

// Tag returns the locale the segmenter was built for.
func (s *RuleSegmenter) Tag() language.Tag {
	return s.tag
}

// Sentences implements Segmenter.
func (s *RuleSegmenter) Sentences(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var sentences []string
	runes := []rune(line)
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}

		// Swallow a run of terminal punctuation ("?!", "...").
		end := i
		for end+1 < len(runes) && isTerminal(runes[end+1]) {
			end++
		}

		// Only a following whitespace closes the sentence; "3.14" and
		// trailing punctuation at end-of-line fall through to the tail.
		if end+1 >= len(runes) || !unicode.IsSpace(runes[end+1]) {
			i = end
			continue
		}

		// A lowercase continuation ("Yes... of course") keeps the
		// sentence open, as does a single-letter initial.
		if continuesLowercase(runes, end+1) || isInitial(runes, start, i) {
			i = end
			continue
		}

		sentence := strings.TrimSpace(string(runes[start : end+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		i = end
		start = end + 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}

	return sentences
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// continuesLowercase reports whether the first non-space rune at or
// after pos is a lowercase letter.
func continuesLowercase(runes []rune, pos int) bool {
	for j := pos; j < len(runes); j++ {
		if unicode.IsSpace(runes[j]) {
			continue
		}
		return unicode.IsLower(runes[j])
	}
	return false
}

// isInitial reports whether the period at position i closes a
// single-letter initial such as "M." or "J.".
func isInitial(runes []rune, start, i int) bool {
	if runes[i] != '.' {
		return false
	}
	letters := 0
	for j := i - 1; j >= start; j-- {
		if unicode.IsSpace(runes[j]) {
			break
		}
		if !unicode.IsLetter(runes[j]) {
			return false
		}
		letters++
	}
	return letters == 1
}
