// Package output renders scraped posts for stdout.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"hn-scraper/models"
)

// MarshalJSON renders posts as an indented JSON array followed by a newline.
// A nil or empty slice renders as "[]".
func MarshalJSON(posts []models.Post) ([]byte, error) {
	if posts == nil {
		posts = []models.Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return nil, fmt.Errorf("failed to encode posts: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes posts to w in a single write
func WriteJSON(w io.Writer, posts []models.Post) error {
	data, err := MarshalJSON(posts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
