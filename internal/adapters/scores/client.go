// Package scores fetches per-user task scores from the scores API.
package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/territoriali/internal/domain/model"
	"github.com/okian/territoriali/pkg/logger"
	"github.com/okian/territoriali/pkg/metrics"
)

// DefaultEndpoint is the public scores API.
const DefaultEndpoint = "https://territoriali.olinfo.it/api/user/{username}/scores"

// UsernamePlaceholder marks where the username goes in an endpoint template.
const UsernamePlaceholder = "{username}"

const requestIDHeader = "X-Request-ID"

// Client queries the scores API. Requests are issued one at a time.
type Client struct {
	http     *http.Client
	endpoint string
	timeout  time.Duration
	logger   logger.Logger
	metrics  *metrics.Manager
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		http:     http.DefaultClient,
		endpoint: DefaultEndpoint,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the request URL for username.
func (c *Client) URL(username string) string {
	return strings.ReplaceAll(c.endpoint, UsernamePlaceholder, url.PathEscape(username))
}

// wireTask mirrors the JSON record; pointers detect missing fields.
type wireTask struct {
	Title    *string  `json:"title"`
	Name     *string  `json:"name"`
	Score    *float64 `json:"score"`
	MaxScore *float64 `json:"max_score"`
}

func (w wireTask) toModel(i int) (model.Task, error) {
	var missing []string
	if w.Title == nil {
		missing = append(missing, "title")
	}
	if w.Name == nil {
		missing = append(missing, "name")
	}
	if w.Score == nil {
		missing = append(missing, "score")
	}
	if w.MaxScore == nil {
		missing = append(missing, "max_score")
	}
	if len(missing) > 0 {
		return model.Task{}, fmt.Errorf("%w: task %d: missing field(s) %s", ErrDecode, i, strings.Join(missing, ", "))
	}
	return model.Task{Title: *w.Title, Name: *w.Name, Score: *w.Score, MaxScore: *w.MaxScore}, nil
}

// Fetch returns the tasks of username in API order. An empty task list is
// reported as a *NotFoundError.
func (c *Client) Fetch(ctx context.Context, username string) (model.Person, error) {
	start := time.Now()
	person, outcome, err := c.fetch(ctx, username)
	elapsed := time.Since(start).Seconds()
	c.metrics.RecordFetch(outcome, elapsed)
	c.logger.Debug(ctx, "fetch finished",
		logger.String("username", username),
		logger.String("outcome", outcome),
		logger.Float64("seconds", elapsed))
	if err != nil {
		return model.Person{}, err
	}
	c.metrics.RecordTasks(len(person.Tasks))
	return person, nil
}

func (c *Client) fetch(ctx context.Context, username string) (model.Person, string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.URL(username)
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Debug(ctx, "fetching scores",
		logger.String("username", username),
		logger.String("url", target),
		logger.String("request_id", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "scores response",
		logger.String("request_id", requestID),
		logger.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Person{}, metrics.OutcomeTransport,
			fmt.Errorf("%w: GET %s: unexpected status %s", ErrTransport, target, resp.Status)
	}

	var wire *[]wireTask
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&wire); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return model.Person{}, metrics.OutcomeDecode, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Person{}, metrics.OutcomeTransport, fmt.Errorf("%w: %w", ErrTransport, ctxErr)
		}
		return model.Person{}, metrics.OutcomeDecode, fmt.Errorf("%w: unexpected data after the task list", ErrDecode)
	}
	if wire == nil {
		return model.Person{}, metrics.OutcomeDecode, fmt.Errorf("%w: expected a JSON array, got null", ErrDecode)
	}

	tasks := make([]model.Task, 0, len(*wire))
	for i, w := range *wire {
		t, err := w.toModel(i)
		if err != nil {
			return model.Person{}, metrics.OutcomeDecode, err
		}
		tasks = append(tasks, t)
	}

	if len(tasks) == 0 {
		return model.Person{}, metrics.OutcomeNotFound, &NotFoundError{Username: username}
	}

	return model.Person{Username: username, Tasks: tasks}, metrics.OutcomeSuccess, nil
}

// FetchAll fetches every username in order and stops at the first error.
func (c *Client) FetchAll(ctx context.Context, usernames []string) ([]model.Person, error) {
	people := make([]model.Person, 0, len(usernames))
	for _, username := range usernames {
		person, err := c.Fetch(ctx, username)
		if err != nil {
			c.logger.Debug(ctx, "fetch failed", logger.String("username", username), logger.Error(err))
			return nil, err
		}
		people = append(people, person)
	}
	return people, nil
}
