package fetcher

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodFetcher implements the Fetcher interface using rod (headless browser)
type RodFetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// Chrome/Chromium locations tried before rod falls back to downloading one
var chromePaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
}

// NewRodFetcher launches a headless browser and connects to it
func NewRodFetcher(userAgent string, timeout time.Duration) (*RodFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-first-run").
		Set("user-agent", userAgent)

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{
		browser: browser,
		timeout: timeout,
	}, nil
}

// Close closes the browser
func (rf *RodFetcher) Close() error {
	if rf.browser != nil {
		return rf.browser.Close()
	}
	return nil
}

// Fetch implements the Fetcher interface
func (rf *RodFetcher) Fetch(url string) (string, error) {
	page, err := rf.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to create page: %w", err)}
	}
	defer page.Close()

	page = page.Timeout(rf.timeout)

	if err := page.Navigate(url); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to navigate: %w", err)}
	}

	if err := page.WaitLoad(); err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to load page: %w", err)}
	}

	html, err := page.HTML()
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to get HTML: %w", err)}
	}

	log.Printf("Rendered %s (%d bytes)\n", url, len(html))
	return html, nil
}
