package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zuo-Peng/zip/internal/session"
)

func TestFromOutcome(t *testing.T) {
	t.Parallel()

	ok := FromOutcome("s1", "gemma2", session.Outcome{
		TaskID:       2,
		WindowSize:   5,
		MessageCount: 3,
		Prompt:       "p",
		Summary:      "Resumo",
		Duration:     time.Second,
	})
	assert.True(t, ok.OK())
	assert.Equal(t, "Resumo", ok.Result)
	assert.Equal(t, 5, ok.WindowSize)
	assert.Equal(t, 3, ok.MessageCount)

	failed := FromOutcome("s1", "gemma2", session.Outcome{TaskID: 3, Summary: "partial", Err: errors.New("boom")})
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Result)
	assert.Equal(t, "boom", failed.Error)
}
