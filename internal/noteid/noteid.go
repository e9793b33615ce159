// Package noteid validates and generates note identifiers.
// An ID doubles as the note's file name inside the save directory, so the
// accepted character set is deliberately narrow.
package noteid

import (
	"math/rand"
	"regexp"
)

// alphabet excludes visually ambiguous characters (0/o, 1/l, 6/b, 8, u/v)
// so IDs survive being read aloud or retyped from a QR code.
const alphabet = "234579abcdefghjkmnpqrstwxyz"

// Length is the number of characters in a generated ID.
const Length = 5

var idRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Valid reports whether id is an acceptable note identifier.
func Valid(id string) bool {
	return idRe.MatchString(id)
}

// New returns a fresh random note ID.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}
