package render

import (
	"encoding/json"

	"github.com/parleybank/parley/core/canon"
)

// JSON renders conversations as a JSON array of conversation documents.
// Field names are the snake_case tags on the canonical types.
func JSON(conversations []*canon.Conversation) ([]byte, error) {
	return json.MarshalIndent(conversations, "", "  ")
}
