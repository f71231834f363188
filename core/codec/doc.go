// Package codec maps the canonical conversation model to and from its
// persisted XML artifact form.
//
// The two directions are format-symmetric but deliberately not lossless:
// conversation and message misc bags, message analysis, and the
// form/attachments/kbitems content placeholders are write-only stubs,
// and cc/bcc participant blocks are never read back. Downstream tooling
// depends on this exact shape; do not tighten it into a full round trip.
package codec
