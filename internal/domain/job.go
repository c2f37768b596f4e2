package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobKind discriminates the tagged union of job payloads.
type JobKind string

const (
	JobURLIngest   JobKind = "url-ingest"
	JobTextIngest  JobKind = "text-ingest"
	JobAICopywrite JobKind = "ai-copywrite"
)

// JobStatus is the job state machine:
//
//	pending -> processing -> completed
//	                      -> pending   (retry budget left)
//	                      -> failed    (budget exhausted)
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// DefaultMaxRetries bounds the per-job retry budget.
const DefaultMaxRetries = 3

// ConversationRef points back at the submitting conversation so completion
// notifications can be routed. Zero value means "no notification".
type ConversationRef struct {
	ChatID    int64 `json:"chatId,omitempty"`
	MessageID int64 `json:"messageId,omitempty"`
}

// JobPayload is the kind-specific input of a job. Implementations are the
// variants of the union; DecodePayload restores them from storage.
type JobPayload interface {
	Kind() JobKind
	// Validate checks payload shape at submission time.
	Validate() error
	// InputHash is the de-duplication key over the business input.
	InputHash() string
}

// URLIngestPayload requests ingestion of a remote page.
type URLIngestPayload struct {
	URL          string          `json:"url"`
	Conversation ConversationRef `json:"conversation,omitempty"`
}

func (p URLIngestPayload) Kind() JobKind { return JobURLIngest }

func (p URLIngestPayload) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("url is required for %s job", JobURLIngest)
	}
	return nil
}

func (p URLIngestPayload) InputHash() string { return hashInput(string(JobURLIngest), p.URL) }

// TextIngestPayload requests publication of already-written text.
type TextIngestPayload struct {
	Text         string          `json:"text"`
	Title        string          `json:"title,omitempty"`
	Category     Category        `json:"category,omitempty"`
	Conversation ConversationRef `json:"conversation,omitempty"`
}

func (p TextIngestPayload) Kind() JobKind { return JobTextIngest }

func (p TextIngestPayload) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return fmt.Errorf("text is required for %s job", JobTextIngest)
	}
	return nil
}

func (p TextIngestPayload) InputHash() string { return hashInput(string(JobTextIngest), p.Text) }

// CopywritePayload requests long-form generation from a short prompt.
type CopywritePayload struct {
	Prompt       string          `json:"prompt"`
	Title        string          `json:"title,omitempty"`
	Category     Category        `json:"category,omitempty"`
	Conversation ConversationRef `json:"conversation,omitempty"`
}

func (p CopywritePayload) Kind() JobKind { return JobAICopywrite }

func (p CopywritePayload) Validate() error {
	if strings.TrimSpace(p.Prompt) == "" {
		return fmt.Errorf("prompt is required for %s job", JobAICopywrite)
	}
	return nil
}

func (p CopywritePayload) InputHash() string { return hashInput(string(JobAICopywrite), p.Prompt) }

// DecodePayload restores the kind-specific payload from its stored JSON form.
func DecodePayload(kind JobKind, raw []byte) (JobPayload, error) {
	switch kind {
	case JobURLIngest:
		var p URLIngestPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return p, nil
	case JobTextIngest:
		var p TextIngestPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return p, nil
	case JobAICopywrite:
		var p CopywritePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown job kind: %s", kind)
	}
}

// ConversationOf extracts the originating-conversation reference from any
// payload variant. Zero value when the payload carries none.
func ConversationOf(p JobPayload) ConversationRef {
	switch v := p.(type) {
	case URLIngestPayload:
		return v.Conversation
	case TextIngestPayload:
		return v.Conversation
	case CopywritePayload:
		return v.Conversation
	default:
		return ConversationRef{}
	}
}

func hashInput(kind, input string) string {
	sum := sha256.Sum256([]byte(kind + "\n" + strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:])
}

// PublishResult is the terminal payload of a completed job.
type PublishResult struct {
	ArticleID uuid.UUID         `json:"articleId"`
	Title     string            `json:"title"`
	Category  Category          `json:"category"`
	WordCount int               `json:"wordCount"`
	Languages []Locale          `json:"languages"`
	URLs      map[Locale]string `json:"urls"`
	Published bool              `json:"published"`
}

// Job is one queued unit of ingest-and-publish work. Owned exclusively by the
// queue; other components only ever see copies.
type Job struct {
	ID          uuid.UUID      `json:"id"`
	Kind        JobKind        `json:"kind"`
	Payload     JobPayload     `json:"payload"`
	Status      JobStatus      `json:"status"`
	RetryCount  int            `json:"retryCount"`
	MaxRetries  int            `json:"maxRetries"`
	InputHash   string         `json:"inputHash"`
	CreatedAt   time.Time      `json:"createdAt"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Result      *PublishResult `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Terminal reports whether the job can no longer change state.
func (j *Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}
