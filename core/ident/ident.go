// Package ident derives stable identifiers from source record content.
//
// Identifiers are BLAKE3 fingerprints of the raw timestamp string of a
// record. Two records carrying an identical timestamp collide by design;
// the collision is accepted and not deduplicated.
package ident

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/zeebo/blake3"
)

// Fingerprint computes the hex-encoded BLAKE3 hash of a string.
func Fingerprint(s string) string {
	h := blake3.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// FromTimestamp derives a stable identifier from a record's raw
// timestamp string. The timestamp must be present; an empty value means
// the source record is missing its discriminating field and the caller
// must reject the record.
func FromTimestamp(timestamp string) (string, error) {
	if timestamp == "" {
		return "", fmt.Errorf("cannot derive identifier: empty timestamp")
	}
	return Fingerprint(timestamp), nil
}

// colorScale brightens hash-derived channels so dark backgrounds stay
// readable behind black text.
const colorScale = 1.5

// Color derives a deterministic 6-hex-digit background color from text,
// typically a message author's display string. The first six hex digits
// of the fingerprint are read as RGB channels, each scaled by 1.5 and
// clamped to [0,255].
func Color(text string) string {
	hexColor := Fingerprint(text)[:6]

	r := scaleChannel(hexColor[0:2])
	g := scaleChannel(hexColor[2:4])
	b := scaleChannel(hexColor[4:6])

	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}

func scaleChannel(hexByte string) int {
	v, _ := strconv.ParseInt(hexByte, 16, 0)
	return clamp(int(float64(v) * colorScale))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
