// Package canon defines the canonical conversation document model.
//
// All source adapters converge to this schema and all renderers consume
// it: a Conversation exclusively owns an ordered sequence of Messages,
// and each Message exclusively owns its Participant lists. No entity is
// shared across two Conversations.
//
// Entities are constructed once, by an adapter or by the codec reader,
// and are not mutated after handoff to a renderer.
package canon
