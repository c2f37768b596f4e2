// Package router binds the publishing API onto the echo instance.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/queue"
)

type JobsRouter struct {
	e     *echo.Echo
	queue *queue.Queue
}

func NewJobsRouter(e *echo.Echo, q *queue.Queue) *JobsRouter {
	return &JobsRouter{
		e:     e,
		queue: q,
	}
}

func (r *JobsRouter) Bind() {
	r.e.POST("/jobs", r.submitHandler)
	r.e.GET("/jobs/stats", r.statsHandler)
	r.e.GET("/jobs/:id", r.statusHandler)
	r.e.POST("/jobs/requeue-stuck", r.requeueHandler)
}

type submitRequest struct {
	Kind      domain.JobKind  `json:"kind"`
	URL       string          `json:"url,omitempty"`
	Text      string          `json:"text,omitempty"`
	Prompt    string          `json:"prompt,omitempty"`
	Title     string          `json:"title,omitempty"`
	Category  domain.Category `json:"category,omitempty"`
	ChatID    int64           `json:"chatId,omitempty"`
	MessageID int64           `json:"messageId,omitempty"`
}

func (req submitRequest) toPayload() (domain.JobPayload, error) {
	conversation := domain.ConversationRef{ChatID: req.ChatID, MessageID: req.MessageID}

	switch req.Kind {
	case domain.JobURLIngest:
		return domain.URLIngestPayload{URL: req.URL, Conversation: conversation}, nil
	case domain.JobTextIngest:
		return domain.TextIngestPayload{
			Text:         req.Text,
			Title:        req.Title,
			Category:     req.Category,
			Conversation: conversation,
		}, nil
	case domain.JobAICopywrite:
		return domain.CopywritePayload{
			Prompt:       req.Prompt,
			Title:        req.Title,
			Category:     req.Category,
			Conversation: conversation,
		}, nil
	default:
		return nil, fmt.Errorf("unknown job kind: %q", req.Kind)
	}
}

type jobResponse struct {
	ID          uuid.UUID             `json:"id"`
	Kind        domain.JobKind        `json:"kind"`
	Status      domain.JobStatus      `json:"status"`
	RetryCount  int                   `json:"retryCount"`
	MaxRetries  int                   `json:"maxRetries"`
	CreatedAt   time.Time             `json:"createdAt"`
	StartedAt   *time.Time            `json:"startedAt,omitempty"`
	CompletedAt *time.Time            `json:"completedAt,omitempty"`
	Result      *domain.PublishResult `json:"result,omitempty"`
	Error       string                `json:"error,omitempty"`
}

func toJobResponse(job *domain.Job) jobResponse {
	return jobResponse{
		ID:          job.ID,
		Kind:        job.Kind,
		Status:      job.Status,
		RetryCount:  job.RetryCount,
		MaxRetries:  job.MaxRetries,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		Result:      job.Result,
		Error:       job.Error,
	}
}

func (r *JobsRouter) submitHandler(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("malformed request body", err)
	}

	payload, err := req.toPayload()
	if err != nil {
		return apperr.NewValidationWrap("invalid submission", err)
	}

	job, err := r.queue.Submit(c.Request().Context(), payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, toJobResponse(job))
}

func (r *JobsRouter) statusHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid job id", err)
	}

	job, err := r.queue.GetStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toJobResponse(job))
}

func (r *JobsRouter) statsHandler(c echo.Context) error {
	counts, err := r.queue.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"pending":    counts[domain.JobPending],
		"processing": counts[domain.JobProcessing],
		"completed":  counts[domain.JobCompleted],
		"failed":     counts[domain.JobFailed],
	})
}

// requeueHandler is the operator escape hatch for jobs orphaned in
// processing. Uses the same age threshold as scheduled maintenance.
func (r *JobsRouter) requeueHandler(c echo.Context) error {
	maxAge := 30 * time.Minute
	if raw := c.QueryParam("maxAgeMinutes"); raw != "" {
		var minutes int
		if _, err := fmt.Sscanf(raw, "%d", &minutes); err != nil || minutes < 1 {
			return apperr.NewValidation("maxAgeMinutes must be a positive integer")
		}
		maxAge = time.Duration(minutes) * time.Minute
	}

	n, err := r.queue.RequeueStuck(c.Request().Context(), maxAge)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int{"requeued": n})
}
