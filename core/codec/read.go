package codec

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/errors"
)

// Precompiled queries for the hot paths of artifact reading.
var (
	conversationQuery = xpath.MustCompile("//conversation")
	messageQuery      = xpath.MustCompile("messages/message")
)

// Read parses a single-conversation artifact. Aggregate artifacts should
// go through ReadAll; Read returns the first conversation found.
func Read(data []byte) (*canon.Conversation, error) {
	conversations, err := ReadAll(data)
	if err != nil {
		return nil, err
	}
	return conversations[0], nil
}

// ReadAll parses an artifact into canonical conversations. It accepts
// both a bare <conversation> root and the aggregate <conversations>
// wrapper, normalizing both shapes to a sequence.
func ReadAll(data []byte) ([]*canon.Conversation, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ArtifactError{Element: "well-formed XML", Err: err}
	}

	nodes := xmlquery.QuerySelectorAll(doc, conversationQuery)
	if len(nodes) == 0 {
		return nil, errors.NewArtifact("", "conversation")
	}

	conversations := make([]*canon.Conversation, 0, len(nodes))
	for _, node := range nodes {
		c, err := readConversation(node)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, nil
}

func readConversation(node *xmlquery.Node) (*canon.Conversation, error) {
	id := node.SelectAttr("id")
	if id == "" {
		return nil, errors.NewArtifact("", "conversation/@id")
	}

	c := canon.NewConversation(id)

	subject, err := requireText(node, "subject", "conversation/subject")
	if err != nil {
		return nil, err
	}
	c.Subject = subject

	category, err := requireText(node, "category", "conversation/category")
	if err != nil {
		return nil, err
	}
	c.Category = category

	status, err := requireText(node, "status", "conversation/status")
	if err != nil {
		return nil, err
	}
	c.Status = canon.Status(status)

	// A missing or empty view counter reads as 0 rather than failing.
	c.Views = optionalCounter(node, "views")

	messages := xmlquery.FindOne(node, "messages")
	if messages == nil {
		return nil, errors.NewArtifact("", "conversation/messages")
	}

	// QuerySelectorAll yields a sequence whether the wrapper holds one
	// message or many, covering the singular/plural container ambiguity.
	for _, msgNode := range xmlquery.QuerySelectorAll(node, messageQuery) {
		m, err := readMessage(msgNode)
		if err != nil {
			return nil, err
		}
		c.Messages = append(c.Messages, m)
	}
	c.RecomputeMediums()

	return c, nil
}

func readMessage(node *xmlquery.Node) (*canon.Message, error) {
	id := node.SelectAttr("id")
	if id == "" {
		return nil, errors.NewArtifact("", "message/@id")
	}

	context := xmlquery.FindOne(node, "context")
	if context == nil {
		return nil, errors.NewArtifact("", "message/context")
	}

	medium, err := requireText(context, "medium", "message/context/medium")
	if err != nil {
		return nil, err
	}

	m := canon.NewMessage(id, node.SelectAttr("conversationId"), canon.Medium(medium))

	m.Private = optionalBool(context, "private")
	m.Likes = optionalCounter(context, "likes")
	m.Views = optionalCounter(context, "views")
	m.Importance = optionalText(context, "importance")

	header := xmlquery.FindOne(node, "header")
	if header == nil {
		return nil, errors.NewArtifact("", "message/header")
	}

	m.Subject, err = requireText(header, "subject", "message/header/subject")
	if err != nil {
		return nil, err
	}

	// "daytime" was renamed from "date" at some point; artifacts of both
	// vintages must read.
	daytime := xmlquery.FindOne(header, "daytime")
	if daytime == nil {
		daytime = xmlquery.FindOne(header, "date")
	}
	if daytime == nil {
		return nil, errors.NewArtifact("", "message/header/daytime")
	}
	m.Timestamp = daytime.InnerText()

	m.Encoding, err = requireText(header, "encoding", "message/header/encoding")
	if err != nil {
		return nil, err
	}
	if m.Encoding == "" {
		m.Encoding = canon.DefaultEncoding
	}

	m.MIME, err = requireText(header, "MIME", "message/header/MIME")
	if err != nil {
		return nil, err
	}

	from := xmlquery.FindOne(header, "from")
	if from == nil {
		return nil, errors.NewArtifact("", "message/header/from")
	}
	m.ParticipantFrom = readParticipants(from)
	if len(m.ParticipantFrom) == 0 {
		return nil, errors.NewArtifact("", "message/header/from/participant")
	}

	// An entirely absent "to" block means an empty participant list,
	// not a malformed artifact.
	if to := xmlquery.FindOne(header, "to"); to != nil {
		m.ParticipantTo = readParticipants(to)
	}

	// cc/bcc, message misc, and analysis are write-only; they are not
	// reconstructed on read.

	content := xmlquery.FindOne(node, "content")
	if content == nil {
		return nil, errors.NewArtifact("", "message/content")
	}
	body := xmlquery.FindOne(content, "body")
	if body == nil {
		return nil, errors.NewArtifact("", "message/content/body")
	}
	m.Body = body.InnerText()

	return m, nil
}

func readParticipants(node *xmlquery.Node) []*canon.Participant {
	var participants []*canon.Participant
	for _, p := range xmlquery.Find(node, "participant") {
		participants = append(participants, &canon.Participant{
			ID:          p.SelectAttr("id"),
			Role:        p.SelectAttr("role"),
			RealName:    p.SelectAttr("realname"),
			UserName:    p.SelectAttr("username"),
			Email:       p.SelectAttr("email"),
			Description: p.SelectAttr("description"),
		})
	}
	return participants
}

// requireText returns the text of a child element, failing if the
// element itself is absent. Empty text is allowed.
func requireText(node *xmlquery.Node, name, element string) (string, error) {
	child := xmlquery.FindOne(node, name)
	if child == nil {
		return "", errors.NewArtifact("", element)
	}
	return child.InnerText(), nil
}

func optionalText(node *xmlquery.Node, name string) string {
	child := xmlquery.FindOne(node, name)
	if child == nil {
		return ""
	}
	return child.InnerText()
}

func optionalCounter(node *xmlquery.Node, name string) int {
	text := strings.TrimSpace(optionalText(node, name))
	if text == "" {
		return 0
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func optionalBool(node *xmlquery.Node, name string) bool {
	text := strings.TrimSpace(optionalText(node, name))
	b, err := strconv.ParseBool(text)
	if err != nil {
		return false
	}
	return b
}
