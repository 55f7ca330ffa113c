// Package note implements content-addressed storage for free-text notes.
//
// A note has no identity other than its content: it is stored in a single file
// named after the SHA-1 hex digest of that content, so saving identical content
// twice always lands on the same file.
package note

import (
	"crypto/sha1"
	"encoding/hex"
)

// Note is a piece of free text and the hash that addresses it.
type Note struct {
	content string
	hash    string
}

// New returns a note for content with its hash computed.
func New(content string) Note {
	return Note{content: content, hash: Hash(content)}
}

// Content returns the note text.
func (n Note) Content() string {
	return n.content
}

// Hash returns the lowercase hex SHA-1 digest of the note text.
func (n Note) Hash() string {
	return n.hash
}

// Hash returns the lowercase hex SHA-1 digest of value.
func Hash(value string) string {
	sum := sha1.Sum([]byte(value))
	return hex.EncodeToString(sum[:])
}
