package render

import (
	"fmt"
	"strings"

	"github.com/parleybank/parley/core/canon"
)

// Message boundary markers in the TSV token stream. They occupy literal
// rows so annotation tooling can delimit messages without a schema.
const (
	tsvMessageOpen  = "1-1\t<<<<<"
	tsvMessageClose = "1-1\t>>>>>"
)

// TSV renders a conversation as a token stream: one row per word token,
// addressed {1-based sentence}-{1-based token}, with literal marker rows
// around a per-message header.
func TSV(c *canon.Conversation, seg Segmenter) []byte {
	var lines []string

	for n, m := range c.Messages {
		from := ""
		if len(m.ParticipantFrom) > 0 {
			from = m.ParticipantFrom[0].Email
		}

		lines = append(lines,
			tsvMessageOpen,
			"",
			fmt.Sprintf("1-1\tMessage n°%d from %s", n+1, from),
			"",
			tsvMessageClose,
			"")

		for i, sentence := range Sentences(m.Body, seg) {
			for j, token := range Words(sentence) {
				lines = append(lines, fmt.Sprintf("%d-%d\t%s", i+1, j+1, token.Text))
			}
			lines = append(lines, "")
		}
	}

	return []byte(strings.Join(lines, "\n"))
}
