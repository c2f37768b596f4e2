package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/pressroom-io/pressroom/pkg/stringsutil"
)

// ErrNoContent is returned when a page yields zero qualifying paragraphs.
// It has no safe default, so it propagates to the queue as job failure.
var ErrNoContent = errors.New("no extractable content found")

const (
	defaultFetchTimeout = 15 * time.Second
	defaultUserAgent    = "Mozilla/5.0 (compatible; PressroomBot/1.0; +https://pressroom.io)"
	maxHTMLBytes        = 2 << 20 // 2MB of page is plenty for article markup

	minTitleLen     = 10
	minParagraphLen = 30
	// A selector group is accepted once its qualifying paragraphs reach this
	// combined length; later groups are not tried.
	minContentLen = 200
)

// Title selectors in priority order; first non-trivial match wins.
var titleSelectors = []string{
	"h1",
	`meta[property="og:title"]`,
	`meta[name="twitter:title"]`,
	"title",
	".post-title",
	".article-title",
	".entry-title",
	"header h1",
	"article h1",
}

// Content container selector groups, tried in priority order.
var contentSelectors = []string{
	"article",
	".post-content",
	".article-content",
	".entry-content",
	".content",
	"main",
	".main-content",
	`[role="main"]`,
	".post-body",
	".story-body",
}

// Chrome stripped before extraction.
var junkSelectors = "script, style, nav, footer, header, .nav, .menu, .sidebar, .ads, .advertisement, .social, iframe, embed, object, .comments, #comments, .comment, .related, .recommended, .more-articles"

// ExtractedPage is the structural result of scraping one URL.
type ExtractedPage struct {
	Title      string
	Paragraphs []string
	Excerpt    string
	SiteName   string
}

// Extractor scrapes article pages. The page fetch is the only pipeline call
// against a fully untrusted host, so it runs under a hard timeout and an
// explicit user agent.
type Extractor struct {
	client    *http.Client
	converter *md.Converter
	rules     *Rules
	userAgent string
	timeout   time.Duration
}

type ExtractorOption func(*Extractor)

func NewExtractor(rules *Rules, opts ...ExtractorOption) *Extractor {
	if rules == nil {
		rules = DefaultRules()
	}
	e := &Extractor{
		client:    &http.Client{Timeout: defaultFetchTimeout},
		converter: md.NewConverter("", true, nil),
		rules:     rules,
		userAgent: defaultUserAgent,
		timeout:   defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithFetchClient(client *http.Client) ExtractorOption {
	return func(e *Extractor) { e.client = client }
}

func WithFetchTimeout(d time.Duration) ExtractorOption {
	return func(e *Extractor) { e.timeout = d }
}

func WithUserAgent(ua string) ExtractorOption {
	return func(e *Extractor) { e.userAgent = ua }
}

// Extract fetches the page and pulls out title and qualifying body
// paragraphs. Returns ErrNoContent when nothing qualifies.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*ExtractedPage, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	doc, err := e.fetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := e.ExtractFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return page, nil
}

// ExtractFromDocument runs extraction over an already-parsed document.
// Split out so the selector logic is testable without a live host.
func (e *Extractor) ExtractFromDocument(doc *goquery.Document) (*ExtractedPage, error) {
	title := e.extractTitle(doc)
	excerpt := extractMetaExcerpt(doc)
	siteName := extractSiteName(doc)

	// Chrome is stripped only after title/meta extraction; the header often
	// holds the h1.
	doc.Find(junkSelectors).Remove()

	paragraphs := e.extractParagraphs(doc)
	if countProse(paragraphs) == 0 {
		return nil, ErrNoContent
	}

	return &ExtractedPage{
		Title:      title,
		Paragraphs: paragraphs,
		Excerpt:    excerpt,
		SiteName:   siteName,
	}, nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme: %s", u.Scheme)
	}
	return nil
}

func (e *Extractor) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page fetch returned %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unsupported content type: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		el := doc.Find(selector).First()
		if el.Length() == 0 {
			continue
		}

		var text string
		if strings.HasPrefix(selector, "meta") {
			text, _ = el.Attr("content")
		} else {
			text = el.Text()
		}

		clean := stringsutil.CollapseWhitespace(text)
		if len(clean) > minTitleLen {
			return clean
		}
	}
	return ""
}

// extractParagraphs tries the container selector groups in priority order,
// converting the matched container to markdown and keeping qualifying
// paragraphs; it stops at the first group with enough content. As a last
// resort it collects bare <p> elements.
func (e *Extractor) extractParagraphs(doc *goquery.Document) []string {
	for _, selector := range contentSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		paragraphs := e.qualify(strings.Split(e.converter.Convert(container), "\n\n"))
		if proseLen(paragraphs) >= minContentLen {
			return paragraphs
		}
	}

	var raw []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		raw = append(raw, s.Text())
	})
	return e.qualify(raw)
}

// qualify normalizes candidate paragraphs and drops short or boilerplate
// ones. Headings survive regardless of length; they carry structure, not
// prose.
func (e *Extractor) qualify(candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if isHeading(c) {
			heading := strings.TrimSpace(c)
			if heading != "#" {
				out = append(out, heading)
			}
			continue
		}
		p := stringsutil.CollapseWhitespace(c)
		if len(p) <= minParagraphLen {
			continue
		}
		if e.rules.IsBoilerplate(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isHeading(p string) bool {
	return strings.HasPrefix(strings.TrimSpace(p), "#")
}

func countProse(paragraphs []string) int {
	n := 0
	for _, p := range paragraphs {
		if !isHeading(p) {
			n++
		}
	}
	return n
}

func proseLen(paragraphs []string) int {
	total := 0
	for _, p := range paragraphs {
		if !isHeading(p) {
			total += len(p)
		}
	}
	return total
}

func extractMetaExcerpt(doc *goquery.Document) string {
	for _, selector := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			clean := stringsutil.CollapseWhitespace(content)
			if len(clean) > 50 {
				if len(clean) > 300 {
					clean = clean[:300]
				}
				return clean
			}
		}
	}
	return ""
}

func extractSiteName(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		return stringsutil.CollapseWhitespace(content)
	}
	return ""
}
