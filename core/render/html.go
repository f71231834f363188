package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/encoding"
	"github.com/parleybank/parley/core/ident"
)

// HTML renders a conversation as an annotation-ready HTML document: a
// fixed head/script scaffold, a conversation metadata table, and one
// editable table row per sentence carrying conversation id, message id,
// and a 1-based sentence index for client-side annotation tooling.
func HTML(c *canon.Conversation, seg Segmenter) []byte {
	var buf bytes.Buffer

	buf.WriteString("<html>\n")
	buf.WriteString("<head>\n")
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	buf.WriteString(`<link type="text/css" rel="stylesheet" href="dist/css/bootstrap.min.css">` + "\n")
	buf.WriteString(`<link type="text/css" href="dist/css/style.css">` + "\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", encoding.EscapeHTML(c.Subject))
	buf.WriteString("</head>\n")
	buf.WriteString("<body>\n")
	buf.WriteString(`<script src="dist/js/jquery-1.11.2.min.js"> </script>` + "\n")
	buf.WriteString(`<script src="dist/js/script.js"> </script>` + "\n")
	buf.WriteString(`<section class="conversation">` + "\n")
	buf.WriteString(`<button type="button" class="save btn btn-default btn-large btn-warning" style="float: left;">SAVE SESSION</button>` + "\n")

	writeMetadataTable(&buf, c)
	buf.WriteString("<hr>\n")

	for _, m := range c.Messages {
		writeMessageTable(&buf, c, m, seg)
	}

	buf.WriteString("</section>\n")
	buf.WriteString("</body>\n")
	buf.WriteString("</html>\n")

	return buf.Bytes()
}

func writeMetadataTable(buf *bytes.Buffer, c *canon.Conversation) {
	buf.WriteString(`<table class="table table-bordered table-condensed" style="background-color: lightgray; width: 100%;">` + "\n")

	metadataRow(buf, "Conversation ID", c.ID, true)
	metadataRow(buf, "Subject", c.Subject, false)
	metadataRow(buf, "Mediums", joinMediums(c.Mediums), false)
	metadataRow(buf, "Category", c.Category, false)

	buf.WriteString("</table>\n")
}

func metadataRow(buf *bytes.Buffer, label, value string, narrow bool) {
	buf.WriteString("<tr>")
	if narrow {
		buf.WriteString(`<td width="10%">`)
	} else {
		buf.WriteString("<td>")
	}
	fmt.Fprintf(buf, "<strong>%s</strong></td><td>%s</td></tr>\n",
		encoding.EscapeHTML(label), encoding.EscapeHTML(value))
}

func joinMediums(mediums []canon.Medium) string {
	parts := make([]string, len(mediums))
	for i, m := range mediums {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

func writeMessageTable(buf *bytes.Buffer, c *canon.Conversation, m *canon.Message, seg Segmenter) {
	author := m.AuthorDisplay()
	color := ident.Color(author)

	buf.WriteString(`<div class="message">` + "\n")
	fmt.Fprintf(buf, `<table class="table table-bordered table-condensed" style="background-color: #%s">`+"\n", color)

	fmt.Fprintf(buf, `<tr><td width="10%%"><strong>Message ID</strong></td><td colspan="2">%s</td></tr>`+"\n",
		encoding.EscapeHTML(m.ID))
	fmt.Fprintf(buf, `<tr><td><strong>Author</strong></td><td colspan="2">%s</td></tr>`+"\n",
		encoding.EscapeHTML(author))
	if m.Timestamp != "" {
		fmt.Fprintf(buf, `<tr><td><strong>Timestamp</strong></td><td colspan="2">%s</td></tr>`+"\n",
			encoding.EscapeHTML(m.Timestamp))
	}

	for i, sentence := range Sentences(m.Body, seg) {
		writeSentenceRow(buf, c.ID, m.ID, i, sentence)
	}

	buf.WriteString("</table>\n")
	buf.WriteString("</div>\n")
}

func writeSentenceRow(buf *bytes.Buffer, conversationID, messageID string, i int, sentence string) {
	buf.WriteString("<tr>\n")
	fmt.Fprintf(buf,
		`<td style="background-color: white" message-id="%s" conversation-id="%s" sentence-number="%d" sentence-id="m%ss%d" contenteditable="" class="annotation"></td>`+"\n",
		encoding.EscapeHTML(messageID), encoding.EscapeHTML(conversationID), i+1, encoding.EscapeHTML(messageID), i)
	fmt.Fprintf(buf, `<td style="text-align: center;" width="35px">%d</td>`+"\n", i+1)
	fmt.Fprintf(buf, `<td><p class="sentence">%s</p></td>`+"\n", encoding.EscapeHTML(sentence))
	buf.WriteString("</tr>\n")
}
