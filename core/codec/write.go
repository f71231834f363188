package codec

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/encoding"
)

// xmlDeclaration is emitted at the top of every artifact.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Write serializes a single conversation into an XML artifact.
func Write(c *canon.Conversation) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	writeConversation(&buf, c, 0)
	return buf.Bytes()
}

// WriteAll serializes several conversations into one aggregate artifact
// under a plural wrapper element.
func WriteAll(conversations []*canon.Conversation) []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	buf.WriteString("<conversations>\n")
	for _, c := range conversations {
		writeConversation(&buf, c, 1)
	}
	buf.WriteString("</conversations>\n")
	return buf.Bytes()
}

func writeConversation(buf *bytes.Buffer, c *canon.Conversation, depth int) {
	openTag(buf, depth, "conversation", attr{"id", c.ID})

	textElement(buf, depth+1, "subject", c.Subject)
	textElement(buf, depth+1, "category", c.Category)
	textElement(buf, depth+1, "views", strconv.Itoa(c.Views))
	textElement(buf, depth+1, "status", string(c.Status))

	writeMisc(buf, depth+1, c.Misc)

	openTag(buf, depth+1, "messages")
	for _, m := range c.Messages {
		writeMessage(buf, m, depth+2)
	}
	closeTag(buf, depth+1, "messages")

	closeTag(buf, depth, "conversation")
}

func writeMessage(buf *bytes.Buffer, m *canon.Message, depth int) {
	// inReplyTo carries the first "to" participant's address, or is
	// empty for thread-opening messages.
	inReplyTo := ""
	if len(m.ParticipantTo) > 0 {
		inReplyTo = m.ParticipantTo[0].Email
	}

	openTag(buf, depth, "message",
		attr{"id", m.ID},
		attr{"conversationId", m.ConversationID},
		attr{"inReplyTo", inReplyTo})

	openTag(buf, depth+1, "context")
	textElement(buf, depth+2, "medium", string(m.Medium))
	textElement(buf, depth+2, "private", strconv.FormatBool(m.Private))
	textElement(buf, depth+2, "likes", strconv.Itoa(m.Likes))
	textElement(buf, depth+2, "views", strconv.Itoa(m.Views))
	textElement(buf, depth+2, "importance", m.Importance)
	closeTag(buf, depth+1, "context")

	openTag(buf, depth+1, "header")
	textElement(buf, depth+2, "subject", m.Subject)
	textElement(buf, depth+2, "daytime", m.Timestamp)
	textElement(buf, depth+2, "encoding", m.Encoding)
	textElement(buf, depth+2, "MIME", m.MIME)
	writeParticipants(buf, depth+2, "from", m.ParticipantFrom)
	writeParticipants(buf, depth+2, "to", m.ParticipantTo)
	writeParticipants(buf, depth+2, "cc", m.ParticipantCc)
	writeParticipants(buf, depth+2, "bcc", m.ParticipantBcc)
	emptyElement(buf, depth+2, "meta")
	closeTag(buf, depth+1, "header")

	writeMisc(buf, depth+1, m.Misc)

	openTag(buf, depth+1, "content")
	textElement(buf, depth+2, "body", m.Body)
	emptyElement(buf, depth+2, "form")
	emptyElement(buf, depth+2, "attachments")
	emptyElement(buf, depth+2, "kbitems")
	closeTag(buf, depth+1, "content")

	// Analysis is a write-only stub; annotation tooling fills it later.
	emptyElement(buf, depth+1, "analysis")

	closeTag(buf, depth, "message")
}

func writeParticipants(buf *bytes.Buffer, depth int, role string, participants []*canon.Participant) {
	if len(participants) == 0 {
		emptyElement(buf, depth, role)
		return
	}

	openTag(buf, depth, role)
	for _, p := range participants {
		writeParticipant(buf, depth+1, p)
	}
	closeTag(buf, depth, role)
}

func writeParticipant(buf *bytes.Buffer, depth int, p *canon.Participant) {
	attrs := []attr{
		{"id", p.ID},
		{"role", p.Role},
		{"realname", p.RealName},
		{"username", p.UserName},
		{"email", p.Email},
		{"description", p.Description},
	}

	if len(p.Misc) == 0 {
		selfClosing(buf, depth, "participant", attrs...)
		return
	}

	openTag(buf, depth, "participant", attrs...)
	writeMisc(buf, depth+1, p.Misc)
	closeTag(buf, depth, "participant")
}

// writeMisc emits the optional misc block as name/value item pairs.
// Keys are sorted so artifacts are byte-stable across runs.
func writeMisc(buf *bytes.Buffer, depth int, misc map[string]string) {
	if len(misc) == 0 {
		return
	}

	keys := make([]string, 0, len(misc))
	for k := range misc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	openTag(buf, depth, "misc")
	for _, k := range keys {
		selfClosing(buf, depth+1, "item", attr{"name", k}, attr{"value", misc[k]})
	}
	closeTag(buf, depth, "misc")
}

// attr is a single name="value" attribute pair.
type attr struct {
	name  string
	value string
}

const indentUnit = "  "

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}

func writeAttrs(buf *bytes.Buffer, attrs []attr) {
	for _, a := range attrs {
		buf.WriteString(" ")
		buf.WriteString(a.name)
		buf.WriteString(`="`)
		buf.WriteString(encoding.EscapeXMLAttr(a.value))
		buf.WriteString(`"`)
	}
}

func openTag(buf *bytes.Buffer, depth int, name string, attrs ...attr) {
	writeIndent(buf, depth)
	buf.WriteString("<")
	buf.WriteString(name)
	writeAttrs(buf, attrs)
	buf.WriteString(">\n")
}

func closeTag(buf *bytes.Buffer, depth int, name string) {
	writeIndent(buf, depth)
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteString(">\n")
}

func textElement(buf *bytes.Buffer, depth int, name, text string) {
	writeIndent(buf, depth)
	if text == "" {
		buf.WriteString("<")
		buf.WriteString(name)
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString("<")
	buf.WriteString(name)
	buf.WriteString(">")
	buf.WriteString(encoding.EscapeXMLText(text))
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteString(">\n")
}

func emptyElement(buf *bytes.Buffer, depth int, name string) {
	writeIndent(buf, depth)
	buf.WriteString("<")
	buf.WriteString(name)
	buf.WriteString("/>\n")
}

func selfClosing(buf *bytes.Buffer, depth int, name string, attrs ...attr) {
	writeIndent(buf, depth)
	buf.WriteString("<")
	buf.WriteString(name)
	writeAttrs(buf, attrs)
	buf.WriteString("/>\n")
}
