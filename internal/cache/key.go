package cache

import (
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
	"lukechampine.com/blake3"
)

// Key is a content address: the hex blake3-256 digest of normalised text.
type Key string

// KeyOf returns the cache key for text. Line endings are unified, the text is
// NFC-normalised and surrounding whitespace is trimmed before hashing, so
// trivially different encodings of the same transcript share a key.
func KeyOf(text string) Key {
	sum := blake3.Sum256(normalize(text))
	return Key(hex.EncodeToString(sum[:]))
}

func normalize(text string) []byte {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	return norm.NFC.Bytes([]byte(text))
}
