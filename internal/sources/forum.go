package sources

import (
	"github.com/parleybank/parley/core/canon"
	"github.com/parleybank/parley/core/errors"
	"github.com/parleybank/parley/core/ident"
)

// ForumConversations folds forum dumps into canonical conversations:
// one Conversation per thread, one Message per post in array order. The
// conversation id derives from the first post's timestamp. Forum posts
// reply to the thread, not to a parent post, so participant_to stays
// empty for every message.
func ForumConversations(records []*ForumRecord, opts Options) ([]*canon.Conversation, error) {
	var conversations []*canon.Conversation
	for _, forum := range records {
		converted, err := forumConversations(forum, opts)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, converted...)
	}
	return conversations, nil
}

func forumConversations(forum *ForumRecord, opts Options) ([]*canon.Conversation, error) {
	var conversations []*canon.Conversation

	// The ceiling is cumulative across the forum's threads, not per
	// thread.
	count := 0

	for _, thread := range forum.Threads {
		if opts.Limit > 0 && count >= opts.Limit {
			break
		}

		c, emitted, err := forumConversation(forum, thread, count, opts)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
		count += emitted
	}

	return conversations, nil
}

func forumConversation(forum *ForumRecord, thread *ForumThread, count int, opts Options) (*canon.Conversation, int, error) {
	if len(thread.Posts) == 0 {
		return nil, 0, errors.NewRecord("forum", "", "posts")
	}
	if thread.Posts[0].Datetime == "" {
		return nil, 0, errors.NewRecord("forum", "", "datetime")
	}

	conversationID, err := ident.FromTimestamp(thread.Posts[0].Datetime)
	if err != nil {
		return nil, 0, &errors.RecordError{Medium: "forum", Field: "datetime", Err: err}
	}

	c := canon.NewConversation(conversationID)
	c.Subject = thread.Name
	c.Category = forum.Description
	if thread.Closed {
		c.Status = canon.StatusClosed
	} else {
		c.Status = canon.StatusOpen
	}

	emitted := 0
	for _, post := range thread.Posts {
		if opts.Limit > 0 && count+emitted >= opts.Limit {
			break
		}

		m, err := forumMessage(post, thread, conversationID)
		if err != nil {
			return nil, 0, err
		}
		c.AppendMessage(m)
		emitted++
	}

	return c, emitted, nil
}

func forumMessage(post *ForumPost, thread *ForumThread, conversationID string) (*canon.Message, error) {
	if post.Datetime == "" {
		return nil, errors.NewRecord("forum", "", "datetime")
	}

	id, err := ident.FromTimestamp(post.Datetime)
	if err != nil {
		return nil, &errors.RecordError{Medium: "forum", Field: "datetime", Err: err}
	}

	m := canon.NewMessage(id, conversationID, canon.MediumForum)
	m.Subject = thread.Name
	m.Timestamp = post.Datetime
	m.MIME = "text/html"
	m.Body = post.Content
	m.ParticipantFrom = []*canon.Participant{forumParticipant(post)}

	if post.Signature != "" {
		m.SetMisc("signature", post.Signature)
	}

	return m, nil
}

func forumParticipant(post *ForumPost) *canon.Participant {
	description := Stringify(post.AuthorID)
	return &canon.Participant{
		ID:          ident.Fingerprint(post.Author + " <" + description + ">"),
		UserName:    post.Author,
		Description: description,
	}
}
