package jobdesc

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs in a raw job posting into single spaces.
func Clean(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Cleaner fetches job postings from URLs and normalizes them into plain text.
type Cleaner struct {
	client *http.Client
}

func NewCleaner() *Cleaner {
	return &Cleaner{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FromURL downloads the page at url, strips markup, scripts and styles, and
// returns the cleaned text of its body.
func (c *Cleaner) FromURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid job posting url: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch job posting: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse job posting: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		return Clean(doc.Text()), nil
	}
	return Clean(body.Text()), nil
}
