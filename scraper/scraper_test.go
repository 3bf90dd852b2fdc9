package scraper

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hn-scraper/fetcher"
	"hn-scraper/parser"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type failingFetcher struct{ err error }

func (f failingFetcher) Fetch(url string) (string, error) { return "", f.err }

func TestScrape_Fixture(t *testing.T) {
	s := NewScraper(fetcher.NewFixtureFetcher("../parser/testdata/news.html"))

	posts, err := s.Scrape("https://news.ycombinator.com/news", 10)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(posts) != 10 {
		t.Fatalf("len(posts) = %d, want 10", len(posts))
	}
	for i, p := range posts {
		if p.Rank != i+1 {
			t.Errorf("posts[%d].Rank = %d", i, p.Rank)
		}
	}
}

func TestScrape_OverHTTP(t *testing.T) {
	page, err := os.ReadFile("../parser/testdata/news.html")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}))
	defer srv.Close()

	s := NewScraper(fetcher.NewCollyFetcher("test", 5*time.Second))
	posts, err := s.Scrape(srv.URL+"/news", 100)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(posts) != 30 {
		t.Errorf("len(posts) = %d, want 30", len(posts))
	}
}

func TestScrape_FetchError(t *testing.T) {
	cause := &fetcher.FetchError{URL: "u", StatusCode: 500, Err: errors.New("Internal Server Error")}
	_, err := NewScraper(failingFetcher{err: cause}).Scrape("u", 30)

	var fetchErr *fetcher.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 500 {
		t.Fatalf("Scrape() error = %v, want wrapped *FetchError", err)
	}
}

func TestScrape_ParseError(t *testing.T) {
	_, err := NewScraper(fetcher.NewStaticFetcher("")).Scrape("u", 30)
	if !errors.Is(err, parser.ErrInvalidDocument) {
		t.Fatalf("Scrape() error = %v, want ErrInvalidDocument", err)
	}
}

func TestScrape_ZeroPosts(t *testing.T) {
	posts, err := NewScraper(fetcher.NewStaticFetcher("garbage")).Scrape("u", 0)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0", len(posts))
	}
}
