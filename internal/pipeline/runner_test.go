package pipeline

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/images"
	"github.com/pressroom-io/pressroom/internal/prefs"
	"github.com/pressroom-io/pressroom/internal/processor"
	"github.com/pressroom-io/pressroom/internal/publish"
	"github.com/pressroom-io/pressroom/internal/queue"
	"github.com/pressroom-io/pressroom/internal/store/inmem"
	"github.com/pressroom-io/pressroom/internal/translate"
)

const (
	stockURL = "https://stock.test/photo.jpg"
	genURL   = "https://gen.test/image.png"
)

// scriptedCompleter answers each pipeline stage by its system instruction.
type scriptedCompleter struct{}

func (s *scriptedCompleter) Complete(ctx context.Context, req ai.Request) (string, error) {
	switch {
	case strings.Contains(req.System, "categorization"):
		return "Technology", nil
	case strings.Contains(req.System, "translator"):
		return "Kwantowe układy wychodzą z laboratorium\n\n" +
			"Pierwszy akapit przetłumaczonego artykułu z odpowiednią ilością treści.\n\n" +
			"Drugi akapit przetłumaczonego artykułu z dalszym ciągiem relacji.\n\n" +
			"Trzeci akapit przetłumaczonego artykułu kończący całość.\n\n" +
			"Czwarty akapit domykający przetłumaczony tekst.", nil
	default:
		return "# Quantum Chips Leave The Lab\n\n" +
			"Quantum processors moved from research papers into commercial racks this year, and vendors noticed.\n\n" +
			"Cooling systems shrank while error correction matured enough for production workloads at scale.\n\n" +
			"Early adopters now rent capacity by the hour instead of buying entire refrigerated cabinets.\n\n" +
			"Analysts expect the first profitable quantum workload within two years of general availability.", nil
	}
}

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, query string) (string, error) {
	return stockURL, nil
}

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return genURL, nil
}

func newTestRunner(dataStore *inmem.Store) *Runner {
	completer := &scriptedCompleter{}
	return NewRunner(
		processor.New(completer, nil),
		prefs.NewResolver(dataStore),
		publish.NewOrchestrator(
			translate.NewTranslator(completer),
			images.NewEngine(stubSearcher{}, stubGenerator{}),
			dataStore,
			"https://pressroom.test",
		),
	)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestTextIngestScenario(t *testing.T) {
	dataStore := inmem.NewStore()
	q := queue.NewQueue(dataStore, newTestRunner(dataStore), queue.WithRescheduleDelay(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	text := strings.Repeat("The quantum computing industry crossed a commercial threshold this quarter. ", 60)
	job, err := q.Submit(ctx, domain.TextIngestPayload{Text: text})
	if err != nil {
		t.Fatal(err)
	}

	final := awaitTerminal(t, q, job.ID)
	if final.Status != domain.JobCompleted {
		t.Fatalf("status = %s (error %q), want %s", final.Status, final.Error, domain.JobCompleted)
	}

	result := final.Result
	if result == nil {
		t.Fatal("completed job carries no result")
	}

	hasPrimary := false
	for _, locale := range result.Languages {
		if locale == domain.PrimaryLocale {
			hasPrimary = true
		}
	}
	if !hasPrimary {
		t.Errorf("languages %v missing the primary locale", result.Languages)
	}

	enURL, ok := result.URLs[domain.LocaleEN]
	if !ok {
		t.Fatal("result has no canonical URL for the primary locale")
	}
	slug := enURL[strings.LastIndex(enURL, "/")+1:]
	if !strings.HasPrefix(enURL, "https://pressroom.test/en/article/") {
		t.Errorf("canonical URL shape wrong: %q", enURL)
	}
	if len(slug) > publish.MaxSlugLen || !slugPattern.MatchString(slug) {
		t.Errorf("slug %q violates the slug contract", slug)
	}

	// Default preferences request two images; the mixed plan embeds exactly
	// one stock and one generated URL in the published body.
	article, err := dataStore.GetArticle(ctx, result.ArticleID)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(article.EN.Content, stockURL); got != 1 {
		t.Errorf("stock URL appears %d times in body, want 1", got)
	}
	if got := strings.Count(article.EN.Content, genURL); got != 1 {
		t.Errorf("generated URL appears %d times in body, want 1", got)
	}
	if article.HeroImageURL == "" {
		t.Error("hero image not set from the first acquired URL")
	}
	if !article.Published {
		t.Error("default preferences auto-publish")
	}
}

func TestSecondaryLocalePopulated(t *testing.T) {
	dataStore := inmem.NewStore()
	runner := newTestRunner(dataStore)

	job := &domain.Job{
		Kind:    domain.JobTextIngest,
		Payload: domain.TextIngestPayload{Text: strings.Repeat("Industry reporting with substance. ", 80)},
	}
	result, err := runner.Run(context.Background(), job)
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Languages) != 2 {
		t.Fatalf("languages = %v, want both locales", result.Languages)
	}

	article, err := dataStore.GetArticle(context.Background(), result.ArticleID)
	if err != nil {
		t.Fatal(err)
	}
	if !article.PL.Populated() {
		t.Error("secondary locale variant not populated")
	}
	if article.PL.Slug == article.EN.Slug && article.PL.Slug == "" {
		t.Error("per-locale slugs missing")
	}
	if !strings.HasPrefix(article.PL.URL, "https://pressroom.test/pl/article/") {
		t.Errorf("secondary canonical URL shape wrong: %q", article.PL.URL)
	}
}

func awaitTerminal(t *testing.T, q *queue.Queue, id uuid.UUID) *domain.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := q.GetStatus(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if job.Terminal() {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not reach a terminal state in time")
	return nil
}
