package questionset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/quizz/internal/questionset/builtin"
	"github.com/abhisek/quizz/internal/store"
)

// ErrUnavailable is returned by a ContentSource that has nothing for the
// requested file.
var ErrUnavailable = errors.New("content unavailable")

// ContentSource supplies the raw text of a question file.
type ContentSource interface {
	Fetch(ctx context.Context, filename string) (string, error)
}

// SourceFunc adapts a function to ContentSource.
type SourceFunc func(ctx context.Context, filename string) (string, error)

func (f SourceFunc) Fetch(ctx context.Context, filename string) (string, error) {
	return f(ctx, filename)
}

// CacheSource reads and writes question files in the kv cache under
// store.FileKey(filename).
type CacheSource struct {
	KV store.KVRepo
}

func (c CacheSource) Fetch(ctx context.Context, filename string) (string, error) {
	text, err := c.KV.Get(ctx, store.FileKey(filename))
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnavailable
	}
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrUnavailable
	}
	return text, nil
}

// Store writes text to the cache, replacing any previous copy.
func (c CacheSource) Store(ctx context.Context, filename, text string) error {
	return c.KV.Put(ctx, store.FileKey(filename), text)
}

// HTTPSource fetches question files relative to a base URL.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource returns a source fetching baseURL/<filename>. A nil client
// gets one with the given timeout.
func NewHTTPSource(baseURL string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (h *HTTPSource) Fetch(ctx context.Context, filename string) (string, error) {
	if h.baseURL == "" {
		return "", ErrUnavailable
	}
	u := h.baseURL + "/" + url.PathEscape(filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// BuiltinSource serves the question files compiled into the binary.
type BuiltinSource struct{}

func (BuiltinSource) Fetch(_ context.Context, filename string) (string, error) {
	text, ok := builtin.Lookup(filename)
	if !ok {
		return "", ErrUnavailable
	}
	return text, nil
}
