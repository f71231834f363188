package canon

// conversation.go - Conversation mutation helpers
// The mediums set is derived state: it must always equal the union of
// message.Medium over Messages, so every mutation path recomputes it
// instead of trusting a stored value.

// NewConversation returns an empty Conversation with the given identity.
func NewConversation(id string) *Conversation {
	return &Conversation{ID: id}
}

// AppendMessage appends a message to the conversation, stamps its
// back-reference, and recomputes the mediums set.
func (c *Conversation) AppendMessage(m *Message) {
	m.ConversationID = c.ID
	c.Messages = append(c.Messages, m)
	c.RecomputeMediums()
}

// RecomputeMediums rebuilds the mediums set from the contained messages.
// First-seen order is kept so repeated calls are stable.
func (c *Conversation) RecomputeMediums() {
	seen := make(map[Medium]bool, 2)
	mediums := c.Mediums[:0]
	for _, m := range c.Messages {
		if !seen[m.Medium] {
			seen[m.Medium] = true
			mediums = append(mediums, m.Medium)
		}
	}
	c.Mediums = mediums
}

// HasMedium reports whether any contained message uses the given medium.
func (c *Conversation) HasMedium(medium Medium) bool {
	for _, m := range c.Mediums {
		if m == medium {
			return true
		}
	}
	return false
}

// AuthorDisplay returns the display form of the message's author:
// "Real Name <address>" for email, the user name for forum posts.
// Messages with no from participant display as empty.
func (m *Message) AuthorDisplay() string {
	if len(m.ParticipantFrom) == 0 {
		return ""
	}
	p := m.ParticipantFrom[0]
	if m.Medium == MediumForum {
		return p.UserName
	}
	return p.RealName + " <" + p.Email + ">"
}

// SetMisc stores a medium-specific extra on the message, allocating the
// bag on first use.
func (m *Message) SetMisc(key, value string) {
	if m.Misc == nil {
		m.Misc = make(map[string]string)
	}
	m.Misc[key] = value
}
