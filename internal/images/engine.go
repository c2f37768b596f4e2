package images

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/markdown"
)

// Engine acquires images per a plan and weaves them into article bodies.
// Either client may be nil; slots needing a missing client are dropped the
// same way a failed request is.
type Engine struct {
	search Searcher
	gen    Generator
}

func NewEngine(search Searcher, gen Generator) *Engine {
	return &Engine{search: search, gen: gen}
}

// Acquire issues one request per slot concurrently and returns the URLs that
// succeeded, in slot order. Individual failures are logged and dropped; the
// article simply gets fewer images.
func (e *Engine) Acquire(ctx context.Context, plan Plan, query, prompt string) []string {
	if plan.Count() == 0 {
		return nil
	}

	results := make([]string, plan.Count())
	var wg sync.WaitGroup
	for i, source := range plan.Slots {
		wg.Add(1)
		go func(i int, source domain.ImageSource) {
			defer wg.Done()
			imgURL, err := e.acquireOne(ctx, source, query, prompt)
			if err != nil {
				slog.Warn("image acquisition failed, dropping slot",
					"slot", i,
					"source", source,
					"error", err,
				)
				return
			}
			results[i] = imgURL
		}(i, source)
	}
	wg.Wait()

	var urls []string
	for _, u := range results {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (e *Engine) acquireOne(ctx context.Context, source domain.ImageSource, query, prompt string) (string, error) {
	switch source {
	case domain.SourceStock:
		if e.search == nil {
			return "", fmt.Errorf("image search is not configured")
		}
		return e.search.Search(ctx, query)
	case domain.SourceGenerated:
		if e.gen == nil {
			return "", fmt.Errorf("image generation is not configured")
		}
		return e.gen.Generate(ctx, prompt)
	default:
		return "", fmt.Errorf("unknown image source: %s", source)
	}
}

// Insert weaves image tags into the body at fractional paragraph positions.
// Bodies with fewer than 3 paragraphs get all images appended at the end so
// short text is not fragmented. With zero URLs the body is returned unchanged.
func Insert(body string, urls []string, title string) string {
	if len(urls) == 0 {
		return body
	}

	paragraphs := markdown.Paragraphs(body)
	if len(paragraphs) < 3 {
		parts := append([]string{}, paragraphs...)
		for i, u := range urls {
			parts = append(parts, imageTag(u, title, i))
		}
		return strings.Join(parts, "\n\n")
	}

	positions := Positions(len(urls), len(paragraphs))

	// Back to front so earlier insertions do not shift later indices.
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		tag := imageTag(urls[i], title, i)
		paragraphs = append(paragraphs[:pos+1], append([]string{tag}, paragraphs[pos+1:]...)...)
	}
	return strings.Join(paragraphs, "\n\n")
}

func imageTag(imgURL, title string, index int) string {
	alt := strings.TrimSpace(title)
	if alt == "" {
		alt = "illustration"
	}
	if index > 0 {
		alt = fmt.Sprintf("%s %d", alt, index+1)
	}
	return fmt.Sprintf("![%s](%s)", alt, imgURL)
}
