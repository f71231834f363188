// Package sources adapts medium-specific source records into the
// canonical conversation model.
//
// Source JSON is decoded into explicit tagged record types at the
// adapter boundary; loosely-typed data never travels deeper than this
// package.
package sources

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/parleybank/parley/core/errors"
)

// EmailRecord is one node of an email reply tree. Answers nests the
// same shape recursively, in reply order.
type EmailRecord struct {
	Subject       string         `json:"subject"`
	Datetime      string         `json:"datetime"`
	AuthorName    string         `json:"author_name"`
	AuthorAddress string         `json:"author_address"`
	Content       string         `json:"content"`
	Answers       []*EmailRecord `json:"answers"`
}

// ForumRecord is one forum dump: a description and a flat thread list.
type ForumRecord struct {
	Description string         `json:"description"`
	Threads     []*ForumThread `json:"threads"`
}

// ForumThread is a named thread with its posts in array order.
type ForumThread struct {
	Name   string       `json:"name"`
	Closed bool         `json:"closed"`
	Posts  []*ForumPost `json:"posts"`
}

// ForumPost is a single post. AuthorID is left loosely typed because
// dumps carry it as either a number or a string; Stringify normalizes it.
type ForumPost struct {
	Datetime  string      `json:"datetime"`
	Author    string      `json:"author"`
	AuthorID  interface{} `json:"author_id"`
	Content   string      `json:"content"`
	Signature string      `json:"signature"`
}

// Options configures an adapter run.
type Options struct {
	// Limit is the bounded-run message ceiling: per reply tree for
	// email, cumulative per forum record. 0 means unlimited.
	Limit int
}

// QuickRunLimit is the conventional bounded-run ceiling used by the
// --quick CLI flag.
const QuickRunLimit = 100

// DecodeEmailRecords decodes a source file's JSON value: an array of
// root email records.
func DecodeEmailRecords(data []byte) ([]*EmailRecord, error) {
	var records []*EmailRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &errors.RecordError{Medium: "email", Field: "json", Err: err}
	}
	return records, nil
}

// DecodeForumRecords decodes a source file's JSON value: an array of
// forum objects. Numbers decode as json.Number so author ids keep their
// source spelling.
func DecodeForumRecords(data []byte) ([]*ForumRecord, error) {
	var records []*ForumRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, &errors.RecordError{Medium: "forum", Field: "json", Err: err}
	}
	return records, nil
}

// Stringify renders a loosely-typed source value as a string, for
// fields like forum author ids that dumps carry as number or string.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
