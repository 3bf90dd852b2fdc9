package fetcher

import (
	"fmt"
	"log"
	"os"
)

// FixtureFetcher serves a canned HTML document instead of hitting the network
type FixtureFetcher struct {
	path string
	html string
}

// NewFixtureFetcher returns a FixtureFetcher reading the document at path on each Fetch
func NewFixtureFetcher(path string) *FixtureFetcher {
	return &FixtureFetcher{path: path}
}

// NewStaticFetcher returns a FixtureFetcher that always serves html
func NewStaticFetcher(html string) *FixtureFetcher {
	return &FixtureFetcher{html: html}
}

// Fetch implements the Fetcher interface. The url is ignored.
func (ff *FixtureFetcher) Fetch(url string) (string, error) {
	if ff.path == "" {
		return ff.html, nil
	}

	data, err := os.ReadFile(ff.path)
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to read fixture: %w", err)}
	}

	log.Printf("Loaded fixture %s for %s (%d bytes)\n", ff.path, url, len(data))
	return string(data), nil
}
