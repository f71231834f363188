package render

import (
	"strings"

	"github.com/parleybank/parley/core/canon"
)

// Text renders a conversation as plain text, one sentence per line,
// messages concatenated in order.
func Text(c *canon.Conversation, seg Segmenter) []byte {
	var sentences []string
	for _, m := range c.Messages {
		sentences = append(sentences, Sentences(m.Body, seg)...)
	}
	return []byte(strings.Join(sentences, "\n"))
}
