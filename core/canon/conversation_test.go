package canon

import (
	"encoding/json"
	"testing"
)

func TestMediumIsValid(t *testing.T) {
	tests := []struct {
		medium Medium
		want   bool
	}{
		{MediumEmail, true},
		{MediumForum, true},
		{Medium("chat"), false},
		{Medium(""), false},
	}

	for _, tt := range tests {
		if got := tt.medium.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.medium, got, tt.want)
		}
	}
}

func TestAppendMessageRecomputesMediums(t *testing.T) {
	c := NewConversation("c1")

	c.AppendMessage(NewMessage("m1", "", MediumEmail))
	if len(c.Mediums) != 1 || c.Mediums[0] != MediumEmail {
		t.Fatalf("Mediums = %v, want [email]", c.Mediums)
	}

	c.AppendMessage(NewMessage("m2", "", MediumEmail))
	if len(c.Mediums) != 1 {
		t.Errorf("Mediums = %v, want single entry for repeated medium", c.Mediums)
	}

	c.AppendMessage(NewMessage("m3", "", MediumForum))
	if len(c.Mediums) != 2 || c.Mediums[1] != MediumForum {
		t.Errorf("Mediums = %v, want [email forum]", c.Mediums)
	}
}

func TestAppendMessageStampsBackReference(t *testing.T) {
	c := NewConversation("c1")
	m := NewMessage("m1", "", MediumEmail)
	c.AppendMessage(m)

	if m.ConversationID != "c1" {
		t.Errorf("ConversationID = %q, want %q", m.ConversationID, "c1")
	}
}

func TestRecomputeMediumsOverwritesStale(t *testing.T) {
	c := NewConversation("c1")
	c.AppendMessage(NewMessage("m1", "", MediumForum))

	// Simulate a stale stored value; the invariant requires recompute
	// to win over whatever was stored.
	c.Mediums = []Medium{MediumEmail}
	c.RecomputeMediums()

	if len(c.Mediums) != 1 || c.Mediums[0] != MediumForum {
		t.Errorf("Mediums = %v, want [forum]", c.Mediums)
	}
}

func TestHasMedium(t *testing.T) {
	c := NewConversation("c1")
	c.AppendMessage(NewMessage("m1", "", MediumForum))

	if !c.HasMedium(MediumForum) {
		t.Error("HasMedium(forum) = false, want true")
	}
	if c.HasMedium(MediumEmail) {
		t.Error("HasMedium(email) = true, want false")
	}
}

func TestNewMessageDefaults(t *testing.T) {
	m := NewMessage("m1", "c1", MediumEmail)

	if m.Encoding != DefaultEncoding {
		t.Errorf("Encoding = %q, want %q", m.Encoding, DefaultEncoding)
	}
	if m.Likes != 0 || m.Views != 0 {
		t.Errorf("counters = %d/%d, want 0/0", m.Likes, m.Views)
	}
	if m.Private {
		t.Error("Private = true, want false")
	}
}

func TestAuthorDisplay(t *testing.T) {
	email := NewMessage("m1", "c1", MediumEmail)
	email.ParticipantFrom = []*Participant{{RealName: "Alice Martin", Email: "alice@example.com"}}
	if got, want := email.AuthorDisplay(), "Alice Martin <alice@example.com>"; got != want {
		t.Errorf("AuthorDisplay() = %q, want %q", got, want)
	}

	forum := NewMessage("m2", "c1", MediumForum)
	forum.ParticipantFrom = []*Participant{{UserName: "alice42", Description: "1007"}}
	if got, want := forum.AuthorDisplay(), "alice42"; got != want {
		t.Errorf("AuthorDisplay() = %q, want %q", got, want)
	}

	empty := NewMessage("m3", "c1", MediumEmail)
	if got := empty.AuthorDisplay(); got != "" {
		t.Errorf("AuthorDisplay() with no from = %q, want empty", got)
	}
}

func TestSetMisc(t *testing.T) {
	m := NewMessage("m1", "c1", MediumForum)
	m.SetMisc("signature", "-- sent from my phone")

	if m.Misc["signature"] != "-- sent from my phone" {
		t.Errorf("Misc[signature] = %q", m.Misc["signature"])
	}
}

func TestConversationJSONFieldNames(t *testing.T) {
	c := NewConversation("c1")
	c.Subject = "Hello"
	m := NewMessage("m1", "c1", MediumEmail)
	m.ParticipantFrom = []*Participant{{ID: "p1", RealName: "Alice", Email: "a@example.com"}}
	c.AppendMessage(m)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	// The JSON export contract is snake_case field names.
	for _, key := range []string{"id", "subject", "category", "status", "mediums", "views", "messages"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("conversation JSON missing key %q", key)
		}
	}

	msgs := decoded["messages"].([]interface{})
	msg := msgs[0].(map[string]interface{})
	for _, key := range []string{"conversation_id", "participant_from", "participant_to", "timestamp", "mime"} {
		if _, ok := msg[key]; !ok {
			t.Errorf("message JSON missing key %q", key)
		}
	}

	from := msg["participant_from"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"real_name", "user_name", "email", "description"} {
		if _, ok := from[key]; !ok {
			t.Errorf("participant JSON missing key %q", key)
		}
	}
}
