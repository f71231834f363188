package sources

import (
	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/errors"
	"github.com/parleybank/parley/core/ident"
)

// EmailConversations folds email reply trees into canonical
// conversations: one Conversation per root record, one Message per tree
// node in pre-order (root first, then each reply subtree in array
// order, depth-first). The root message's id doubles as the
// conversation id. Category labels the whole batch, typically the
// source filename without extension.
func EmailConversations(records []*EmailRecord, category string, opts Options) ([]*canon.Conversation, error) {
	conversations := make([]*canon.Conversation, 0, len(records))
	for _, root := range records {
		c, err := emailConversation(root, category, opts)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, nil
}

// frame is one pending node of the iterative pre-order walk. An explicit
// stack avoids stack-depth surprises on deeply nested reply chains.
type frame struct {
	record *EmailRecord
	parent *EmailRecord
}

func emailConversation(root *EmailRecord, category string, opts Options) (*canon.Conversation, error) {
	if root.Datetime == "" {
		return nil, errors.NewRecord("email", "", "datetime")
	}

	conversationID, err := ident.FromTimestamp(root.Datetime)
	if err != nil {
		return nil, &errors.RecordError{Medium: "email", Field: "datetime", Err: err}
	}

	c := canon.NewConversation(conversationID)
	c.Subject = root.Subject
	c.Category = category

	stack := []frame{{record: root}}
	for len(stack) > 0 {
		// The ceiling abandons remaining siblings and descendants; it
		// is a debugging aid, not a correctness feature.
		if opts.Limit > 0 && len(c.Messages) >= opts.Limit {
			break
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		m, err := emailMessage(f.record, f.parent, conversationID)
		if err != nil {
			return nil, err
		}
		c.AppendMessage(m)

		// Children push in reverse so the first reply pops first.
		for i := len(f.record.Answers) - 1; i >= 0; i-- {
			stack = append(stack, frame{record: f.record.Answers[i], parent: f.record})
		}
	}

	return c, nil
}

func emailMessage(record, parent *EmailRecord, conversationID string) (*canon.Message, error) {
	if record.Datetime == "" {
		return nil, errors.NewRecord("email", "", "datetime")
	}

	id, err := ident.FromTimestamp(record.Datetime)
	if err != nil {
		return nil, &errors.RecordError{Medium: "email", Field: "datetime", Err: err}
	}

	m := canon.NewMessage(id, conversationID, canon.MediumEmail)
	m.Subject = record.Subject
	m.Timestamp = record.Datetime
	m.MIME = "text/plain"
	m.Body = record.Content
	m.ParticipantFrom = []*canon.Participant{emailParticipant(record)}

	// The root opens the thread and addresses nobody; every reply
	// addresses its parent's author.
	if parent != nil {
		m.ParticipantTo = []*canon.Participant{emailParticipant(parent)}
	}

	return m, nil
}

func emailParticipant(record *EmailRecord) *canon.Participant {
	display := record.AuthorName + " <" + record.AuthorAddress + ">"
	return &canon.Participant{
		ID:       ident.Fingerprint(display),
		RealName: record.AuthorName,
		Email:    record.AuthorAddress,
	}
}
