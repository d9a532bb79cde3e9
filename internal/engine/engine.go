package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const (
	DefaultServerURL = "http://localhost:11434"
	DefaultModel     = "gemma2:2b"
	DefaultMaxTokens = 1500

	probeTimeout = 5 * time.Second
)

// Summarizer turns a prompt into a summary. Calls may block for a long time.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	ServerURL   string
	Model       string
	MaxTokens   int
	Temperature float64

	// HTTP is used for the model probe. Defaults to a client with a short timeout.
	HTTP *http.Client
}

// Engine is a handle to a model served by a local Ollama instance.
type Engine struct {
	llm       llms.Model
	model     string
	maxTokens int
	temp      float64

	mu     sync.Mutex
	closed bool
}

// Initialize checks that the model is available on the local server and
// returns a handle to it. Failures are reported as *InitError.
func Initialize(ctx context.Context, opts Options) (*Engine, error) {
	opts = withDefaults(opts)

	if err := probeModel(ctx, opts); err != nil {
		return nil, &InitError{ServerURL: opts.ServerURL, Model: opts.Model, Err: err}
	}

	llm, err := ollama.New(
		ollama.WithServerURL(opts.ServerURL),
		ollama.WithModel(opts.Model),
	)
	if err != nil {
		return nil, &InitError{ServerURL: opts.ServerURL, Model: opts.Model, Err: err}
	}
	return newEngine(llm, opts), nil
}

func newEngine(llm llms.Model, opts Options) *Engine {
	return &Engine{
		llm:       llm,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		temp:      opts.Temperature,
	}
}

func withDefaults(opts Options) Options {
	opts.ServerURL = strings.TrimRight(strings.TrimSpace(opts.ServerURL), "/")
	if opts.ServerURL == "" {
		opts.ServerURL = DefaultServerURL
	}
	opts.Model = strings.TrimSpace(opts.Model)
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: probeTimeout}
	}
	return opts
}

func (e *Engine) Model() string {
	return e.model
}

// Summarize runs prompt through the model. It has no timeout of its own.
func (e *Engine) Summarize(ctx context.Context, prompt string) (string, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return "", &InferenceError{Model: e.model, Err: errors.New("engine closed")}
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, e.llm, prompt,
		llms.WithMaxTokens(e.maxTokens),
		llms.WithTemperature(e.temp),
	)
	if err != nil {
		return "", &InferenceError{Model: e.model, Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &InferenceError{Model: e.model, Err: errors.New("model returned empty response")}
	}
	return out, nil
}

// Close releases the handle. Later Summarize calls fail.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

// probeModel asks the server which models it has pulled.
func probeModel(ctx context.Context, opts Options) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.ServerURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	resp, err := opts.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read probe response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return fmt.Errorf("decode probe response: %w", err)
	}
	for _, m := range tags.Models {
		if modelMatches(m.Name, opts.Model) || modelMatches(m.Model, opts.Model) {
			return nil
		}
	}
	return fmt.Errorf("model %q not found on server (run `ollama pull %s`)", opts.Model, opts.Model)
}

// modelMatches treats "gemma2" and "gemma2:latest" as the same model.
func modelMatches(have, want string) bool {
	if have == "" {
		return false
	}
	if have == want {
		return true
	}
	if !strings.Contains(want, ":") {
		return have == want+":latest"
	}
	return false
}
