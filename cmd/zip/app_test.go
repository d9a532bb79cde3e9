package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/config"
	"github.com/Zuo-Peng/zip/internal/prompt"
	"github.com/Zuo-Peng/zip/internal/session"
)

func testApp(cfg *config.Config) *app {
	return &app{cfg: cfg, logger: zerolog.Nop(), builder: prompt.Default()}
}

func TestLoadMessagesSamples(t *testing.T) {
	a := testApp(&config.Config{SeedSamples: true})

	msgs, err := a.loadMessages()
	require.NoError(t, err)
	assert.Equal(t, chat.SampleMessages(), msgs)

	a.cfg.SeedSamples = false
	msgs, err = a.loadMessages()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestLoadMessagesTranscriptFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversa.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"timestamp":"10:00","author":"Ana","content":"bom dia"}`+"\n"+
			`{"timestamp":"10:01","author":"Eu","content":"oi Ana"}`+"\n",
	), 0o644))

	a := testApp(&config.Config{SeedSamples: true, Transcript: path})
	msgs, err := a.loadMessages()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Ana", msgs[0].Author)
	assert.Equal(t, "oi Ana", msgs[1].Content)
}

func TestCoordinatorWithoutEngine(t *testing.T) {
	a := testApp(&config.Config{SeedSamples: true, LocalAuthor: "Eu"})
	a.engineErr = errors.New("connection refused")

	coord, err := a.coordinator()
	require.NoError(t, err)
	assert.Len(t, coord.Messages(), len(chat.SampleMessages()))

	_, err = coord.SubmitSummarization("5")
	require.ErrorIs(t, err, session.ErrNoEngine)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFormatSummaryPlain(t *testing.T) {
	assert.Equal(t, "**Resumo**\n", formatSummary("  **Resumo**\n\n", 80, false))
}
