package model

// Note represents a stored note in the system.
// This is a pure domain model with no persistence-specific dependencies or
// tags; the ID doubles as the file name under the save path.
type Note struct {
	ID      string `json:"id"`
	Content []byte `json:"content"`
}

// Empty reports whether the note has no content (including a note that was
// never written).
func (n *Note) Empty() bool {
	return len(n.Content) == 0
}
