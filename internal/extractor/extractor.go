// Package extractor reduces a blog page to bounded plain text.
package extractor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iconidentify/postcraft/internal/config"
	"github.com/iconidentify/postcraft/internal/domain"
)

// skipped elements are dropped together with everything beneath them.
var skipped = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
	atom.Nav:    true,
	atom.Footer: true,
}

// Extractor fetches blog pages over HTTP.
type Extractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
	maxBody   int64
	logger    *slog.Logger
}

// New creates an Extractor.
func New(cfg config.ExtractConfig, logger *slog.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		maxChars:  cfg.MaxChars,
		maxBody:   cfg.MaxBodyBytes,
		logger:    logger,
	}
}

// Extract fetches url and returns its visible text, truncated to the
// configured character limit. Errors wrap domain.ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, url string) (domain.BlogContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	// Error pages are still parsed; some blogs serve content with odd statuses.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Warn("blog fetch returned non-2xx status",
			"url", url,
			"status", resp.StatusCode,
		)
	}

	body := io.Reader(resp.Body)
	if e.maxBody > 0 {
		body = io.LimitReader(resp.Body, e.maxBody)
	}

	doc, err := html.Parse(body)
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %v", domain.ErrExtractionFailed, err)
	}

	text := Flatten(visibleText(doc))
	return domain.BlogContent(domain.Truncate(text, e.maxChars)), nil
}

// visibleText concatenates every text node outside skipped elements.
func visibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.DataAtom] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}

// Flatten collapses text into single-spaced phrases. Each line is trimmed,
// split on runs of two spaces, and the non-empty pieces are joined by one space.
func Flatten(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, phrase := range strings.Split(line, "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, " ")
}
