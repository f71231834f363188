package canon

// types.go - Canonical schema type definitions
// All adapters and renderers should import these types from core/canon
// rather than defining their own.

// Medium represents the source channel of a message.
type Medium string

// Medium constants.
const (
	MediumEmail Medium = "email"
	MediumForum Medium = "forum"
)

// validMediums is the set of valid mediums.
var validMediums = map[Medium]bool{
	MediumEmail: true,
	MediumForum: true,
}

// IsValid returns true if the medium is valid.
func (m Medium) IsValid() bool {
	return validMediums[m]
}

// Status represents the open/closed state of a conversation.
type Status string

// Status constants. StatusUnset is used for mediums that have no
// open/closed notion (email threads).
const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusUnset  Status = ""
)

// Conversation is the canonical aggregate of messages sharing a
// subject or thread.
type Conversation struct {
	// ID is the stable conversation identifier, derived from the root
	// record's timestamp or read back from an artifact.
	ID string `json:"id"`

	// Subject is the conversation subject line or thread name.
	Subject string `json:"subject"`

	// Category is a free-form grouping label (source filename, forum name).
	Category string `json:"category"`

	// Status is "open", "closed", or unset.
	Status Status `json:"status"`

	// Mediums is the union of the contained messages' mediums. It is
	// recomputed on every mutation and never stored authoritatively.
	Mediums []Medium `json:"mediums"`

	// Views is the view counter. A missing counter reads as 0.
	Views int `json:"views"`

	// Messages is the ordered message sequence. Insertion order is the
	// reconstruction order.
	Messages []*Message `json:"messages"`

	// Analysis is an open key-value bag, opaque to the core.
	Analysis map[string]interface{} `json:"analysis,omitempty"`

	// Misc holds medium-specific extras as string pairs.
	Misc map[string]string `json:"misc,omitempty"`
}

// Message is a single email or forum post within a conversation.
type Message struct {
	// ID is the stable message identifier, derived from the source
	// record's timestamp.
	ID string `json:"id"`

	// ConversationID is a back-reference to the owning conversation.
	// It is a relation only, never dereferenced.
	ConversationID string `json:"conversation_id"`

	// Medium is the source channel ("email" or "forum").
	Medium Medium `json:"medium"`

	// Private marks messages not intended for public display.
	Private bool `json:"private"`

	// Likes and Views are non-negative counters, default 0.
	Likes int `json:"likes"`
	Views int `json:"views"`

	// Importance is an optional priority label.
	Importance string `json:"importance"`

	// Subject is the message subject line.
	Subject string `json:"subject"`

	// Timestamp is the source timestamp, preserved verbatim and never
	// reparsed.
	Timestamp string `json:"timestamp"`

	// Encoding is the character encoding, "UTF-8" unless stated.
	Encoding string `json:"encoding"`

	// MIME is the body MIME type ("text/plain", "text/html").
	MIME string `json:"mime"`

	// Participant lists by role. ParticipantFrom has exactly one entry
	// for email and forum sources; the others may be empty.
	ParticipantFrom []*Participant `json:"participant_from"`
	ParticipantTo   []*Participant `json:"participant_to"`
	ParticipantCc   []*Participant `json:"participant_cc"`
	ParticipantBcc  []*Participant `json:"participant_bcc"`

	// Body is the raw message text. Original whitespace and markup are
	// preserved.
	Body string `json:"body"`

	// Form is an opaque structured field, often nil.
	Form interface{} `json:"form"`

	// KBItems is a sequence of opaque items, often empty.
	KBItems []interface{} `json:"kbitems"`

	// Analysis is an opaque bag, nil until an annotation pass fills it.
	Analysis map[string]interface{} `json:"analysis"`

	// Misc holds medium-specific extras (e.g. a forum post signature).
	Misc map[string]string `json:"misc,omitempty"`
}

// Participant is one member of a message's from/to/cc/bcc lists.
type Participant struct {
	// ID is the stable participant identifier.
	ID string `json:"id"`

	// Role is an optional role label.
	Role string `json:"role"`

	// RealName and Email are populated by email sources.
	RealName string `json:"real_name"`
	Email    string `json:"email"`

	// UserName and Description are populated by forum sources.
	UserName    string `json:"user_name"`
	Description string `json:"description"`

	// Misc holds medium-specific extras.
	Misc map[string]string `json:"misc,omitempty"`
}

// DefaultEncoding is the encoding assigned to messages whose source
// does not state one.
const DefaultEncoding = "UTF-8"

// NewMessage returns a Message with counter and encoding defaults applied.
func NewMessage(id, conversationID string, medium Medium) *Message {
	return &Message{
		ID:             id,
		ConversationID: conversationID,
		Medium:         medium,
		Encoding:       DefaultEncoding,
	}
}
