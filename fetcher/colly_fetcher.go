package fetcher

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// newCollector builds a fresh collector per fetch so callbacks and the
// visited set never leak between calls. Every response reaches OnResponse;
// status checking happens in Fetch.
func (cf *CollyFetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(cf.userAgent),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(cf.timeout)
	return c
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	c := cf.newCollector()

	var body string
	var statusCode int

	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		body = string(r.Body)
		log.Printf("Fetched %s (status %d, %d bytes)\n", r.Request.URL, r.StatusCode, len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode = r.StatusCode
		log.Printf("Error fetching %s: %v\n", url, err)
	})

	if err := c.Visit(url); err != nil {
		return "", &FetchError{URL: url, StatusCode: statusCode, Err: err}
	}

	if statusCode < 200 || statusCode > 299 {
		text := http.StatusText(statusCode)
		if text == "" {
			text = "unexpected status"
		}
		return "", &FetchError{URL: url, StatusCode: statusCode, Err: errors.New(text)}
	}

	return body, nil
}
