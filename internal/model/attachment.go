package model

// Attachment represents an uploaded file stored alongside notes.
// Name is the stored (timestamped, sanitized) file name; URL is the path the
// client can fetch it from.
type Attachment struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	IsImage bool   `json:"is_image"`
}
