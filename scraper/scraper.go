package scraper

import (
	"fmt"
	"log"

	"hn-scraper/fetcher"
	"hn-scraper/models"
	"hn-scraper/parser"
)

// Scraper runs the fetch and parse stages for one listing page
type Scraper struct {
	fetcher fetcher.Fetcher
	parser  *parser.Parser
}

// NewScraper creates a Scraper on top of any Fetcher implementation
func NewScraper(f fetcher.Fetcher) *Scraper {
	return &Scraper{
		fetcher: f,
		parser:  parser.NewParser(),
	}
}

// Scrape fetches url once and extracts up to limit posts from it.
// Errors are prefixed with the failing stage.
func (s *Scraper) Scrape(url string, limit int) ([]models.Post, error) {
	html, err := s.fetcher.Fetch(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	posts, err := s.parser.ParseHTML(html, limit)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	log.Printf("Extracted %d posts (requested: %d)\n", len(posts), limit)
	return posts, nil
}
