package engine

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if tp, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = tp.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func tagsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitializeFindsModel(t *testing.T) {
	t.Parallel()

	srv := tagsServer(t, http.StatusOK, `{"models":[{"name":"llama3:8b"},{"name":"gemma2:latest","model":"gemma2:latest"}]}`)

	eng, err := Initialize(context.Background(), Options{ServerURL: srv.URL + "/", Model: "gemma2"})
	require.NoError(t, err)
	assert.Equal(t, "gemma2", eng.Model())
	require.NoError(t, eng.Close())
}

func TestInitializeMissingModel(t *testing.T) {
	t.Parallel()

	srv := tagsServer(t, http.StatusOK, `{"models":[{"name":"llama3:8b"}]}`)

	_, err := Initialize(context.Background(), Options{ServerURL: srv.URL, Model: "gemma2:2b"})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "gemma2:2b", initErr.Model)
	assert.Contains(t, err.Error(), "not found")
}

func TestInitializeServerError(t *testing.T) {
	t.Parallel()

	srv := tagsServer(t, http.StatusInternalServerError, "boom")

	_, err := Initialize(context.Background(), Options{ServerURL: srv.URL, Model: "gemma2"})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Contains(t, err.Error(), "500")
}

func TestInitializeUnreachableServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := Initialize(context.Background(), Options{ServerURL: url, Model: "gemma2"})
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
}

func TestSummarizeReturnsTrimmedText(t *testing.T) {
	t.Parallel()

	fm := &fakeModel{reply: "  Resumo: tudo certo.\n"}
	eng := newEngine(fm, withDefaults(Options{Model: "gemma2"}))

	out, err := eng.Summarize(context.Background(), "Resuma isto")
	require.NoError(t, err)
	assert.Equal(t, "Resumo: tudo certo.", out)
	assert.Equal(t, 1, fm.calls)
	assert.Equal(t, "Resuma isto", fm.prompt)
}

func TestSummarizeWrapsFailures(t *testing.T) {
	t.Parallel()

	cause := errors.New("decoder crashed")
	eng := newEngine(&fakeModel{err: cause}, withDefaults(Options{Model: "gemma2"}))

	_, err := eng.Summarize(context.Background(), "p")
	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "gemma2", infErr.Model)
}

func TestSummarizeRejectsEmptyOutput(t *testing.T) {
	t.Parallel()

	eng := newEngine(&fakeModel{reply: "   "}, withDefaults(Options{}))

	_, err := eng.Summarize(context.Background(), "p")
	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
}

func TestSummarizeAfterClose(t *testing.T) {
	t.Parallel()

	fm := &fakeModel{reply: "ok"}
	eng := newEngine(fm, withDefaults(Options{}))
	require.NoError(t, eng.Close())

	_, err := eng.Summarize(context.Background(), "p")
	var infErr *InferenceError
	require.ErrorAs(t, err, &infErr)
	assert.Zero(t, fm.calls)
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	opts := withDefaults(Options{ServerURL: " http://host:1/ "})
	assert.Equal(t, "http://host:1", opts.ServerURL)
	assert.Equal(t, DefaultModel, opts.Model)
	assert.Equal(t, DefaultMaxTokens, opts.MaxTokens)
	assert.NotNil(t, opts.HTTP)
}

func TestModelMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		have, want string
		expected   bool
	}{
		{"gemma2:latest", "gemma2", true},
		{"gemma2", "gemma2", true},
		{"gemma2:2b", "gemma2", false},
		{"gemma2:2b", "gemma2:2b", true},
		{"", "gemma2", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, modelMatches(tc.have, tc.want), "%s vs %s", tc.have, tc.want)
	}
}
