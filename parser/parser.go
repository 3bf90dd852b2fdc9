package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hn-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// MaxPosts caps the number of posts a single parse returns
const MaxPosts = 100

// maxTextLen bounds title and author length, in characters
const maxTextLen = 256

var (
	// ErrInvalidDocument means the input is not a listing page at all
	ErrInvalidDocument = errors.New("invalid document")
	// ErrMissingField means an entry lacks its title or link
	ErrMissingField = errors.New("missing field")
)

// ParseError describes why a page could not be turned into posts.
// Entry is the 1-based position of the offending entry, 0 for document errors.
type ParseError struct {
	Kind   error
	Entry  int
	Field  string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Entry > 0 {
		return fmt.Sprintf("%v: entry %d: %s", e.Kind, e.Entry, e.Field)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Parser extracts posts from Hacker News listing HTML
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseHTML extracts up to limit posts from htmlContent in page order.
//
// The first entry without a title or link aborts the whole parse with
// ErrMissingField. Score, author and comment count are optional.
func (p *Parser) ParseHTML(htmlContent string, limit int) ([]models.Post, error) {
	if limit > MaxPosts {
		limit = MaxPosts
	}
	if limit <= 0 {
		return []models.Post{}, nil
	}

	if strings.TrimSpace(htmlContent) == "" {
		return nil, &ParseError{Kind: ErrInvalidDocument, Detail: "empty document"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ParseError{Kind: ErrInvalidDocument, Detail: err.Error()}
	}

	entries := doc.Find("tr.athing")
	if entries.Length() == 0 && doc.Find("#hnmain, table.itemlist").Length() == 0 {
		return nil, &ParseError{Kind: ErrInvalidDocument, Detail: "no listing found"}
	}

	posts := make([]models.Post, 0, min(limit, entries.Length()))
	var parseErr error
	prevRank := 0

	entries.EachWithBreak(func(i int, s *goquery.Selection) bool {
		post, err := p.extractPost(s, i+1, prevRank)
		if err != nil {
			parseErr = err
			return false
		}
		posts = append(posts, post)
		prevRank = post.Rank
		return len(posts) < limit
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return posts, nil
}

// extractPost builds a post from a tr.athing row and the row following it
func (p *Parser) extractPost(s *goquery.Selection, position, prevRank int) (models.Post, error) {
	link := s.Find("span.titleline > a, a.storylink").First()

	title := strings.TrimSpace(link.Text())
	if link.Length() == 0 || title == "" {
		return models.Post{}, &ParseError{Kind: ErrMissingField, Entry: position, Field: "title"}
	}

	href, ok := link.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return models.Post{}, &ParseError{Kind: ErrMissingField, Entry: position, Field: "url"}
	}

	post := models.Post{
		Title: truncate(title, maxTextLen),
		URL:   href,
	}

	// Ranks are displayed as "22." but may be missing; continue the sequence then
	if rank, ok := numberPrefix(s.Find("span.rank").First().Text()); ok && rank > prevRank {
		post.Rank = rank
	} else {
		post.Rank = prevRank + 1
	}

	meta := metadataRow(s)
	if meta == nil {
		return post, nil
	}

	if author := strings.TrimSpace(meta.Find("a.hnuser").First().Text()); author != "" {
		author = truncate(author, maxTextLen)
		post.Author = &author
	}

	if score, ok := numberPrefix(meta.Find("span.score").First().Text()); ok {
		post.Score = &score
	}

	if comments, ok := commentCount(meta); ok {
		post.Comments = &comments
	}

	return post, nil
}

// metadataRow returns the row holding score, author and comments, or nil
// when the entry is directly followed by another entry or nothing at all
func metadataRow(s *goquery.Selection) *goquery.Selection {
	next := s.NextAllFiltered("tr").First()
	if next.Length() == 0 || next.HasClass("athing") {
		return nil
	}
	return next
}

// commentCount reads the "N comments" link. "discuss" means no comments yet.
func commentCount(meta *goquery.Selection) (int, bool) {
	count, found := 0, false
	meta.Find("a[href^='item?id=']").Each(func(i int, a *goquery.Selection) {
		text := strings.ToLower(normalizeSpace(a.Text()))
		switch {
		case text == "discuss":
			count, found = 0, true
		case strings.Contains(text, "comment"):
			if n, ok := numberPrefix(text); ok {
				count, found = n, true
			}
		}
	})
	return count, found
}

// numberPrefix parses the leading digits of text, e.g. "82 points" -> 82
func numberPrefix(text string) (int, bool) {
	text = normalizeSpace(text)
	end := strings.IndexFunc(text, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(text)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeSpace turns non-breaking spaces into plain ones and trims
func normalizeSpace(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\u00a0", " "))
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
