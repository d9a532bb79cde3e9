package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/journal"
)

func TestWrapLineSkipsANSI(t *testing.T) {
	t.Parallel()

	line := colorLocal + "abcdef" + colorReset
	got := wrapLine(line, 3)
	assert.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], colorLocal+"abc"))
	assert.Equal(t, "def"+colorReset, got[1])
}

func TestWrapLineWideRunes(t *testing.T) {
	t.Parallel()

	got := wrapLine("日本語", 4)
	assert.Equal(t, []string{"日本", "語"}, got)
}

func TestWrapLineNoWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"abc"}, wrapLine("abc", 0))
	assert.Equal(t, []string{""}, wrapLine("", 10))
}

func TestWindowPlain(t *testing.T) {
	t.Parallel()

	window := []chat.Message{
		{Timestamp: "09:01", Author: "Ana", Content: "tudo bem?"},
		{Timestamp: "09:02", Author: chat.LocalAuthor, Content: "sim\ne você"},
	}
	out := Window(window, 3, Options{NoColor: true})

	assert.Equal(t, strings.Join([]string{
		"--- 2 de 3 mensagens ---",
		"... (1 mensagens anteriores) ...",
		"Ana 09:01",
		"  tudo bem?",
		"Eu 09:02",
		"  sim",
		"  e você",
		"",
	}, "\n"), out)
}

func TestWindowColors(t *testing.T) {
	t.Parallel()

	out := Window([]chat.Message{{Author: chat.LocalAuthor, Content: "x"}, {Author: "Ana", Content: "y"}}, 2, Options{})
	assert.Contains(t, out, colorLocal+"Eu"+colorReset)
	assert.Contains(t, out, colorOther+"Ana"+colorReset)
	assert.NotContains(t, out, "anteriores")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", Truncate("abc", 5, "…"))
	assert.Equal(t, "a b", Truncate("a\nb", 5, "…"))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5, "…"))
	assert.Equal(t, "", Truncate("abc", 0, "…"))
}

func TestEntryPlainHasNoEscapes(t *testing.T) {
	t.Parallel()

	e := journal.Entry{
		ID:           4,
		MessageCount: 12,
		WindowSize:   100,
		Result:       "Ana e Bruno combinaram o almoço.",
		StartedAt:    time.Date(2024, 5, 1, 10, 46, 0, 0, time.UTC),
		Duration:     1520 * time.Millisecond,
	}

	got := Entry(e, Options{NoColor: true})
	assert.NotContains(t, got, "\033[")
	fields := strings.Split(got, "\t")
	assert.Len(t, fields, 6)
	assert.Equal(t, "4", fields[0])
	assert.Equal(t, "ok", fields[2])
	assert.Equal(t, "12/100 msgs", fields[3])
	assert.Equal(t, "1.5s", fields[4])
	assert.Equal(t, "Ana e Bruno combinaram o almoço.", fields[5])
}

func TestEntryFailureColored(t *testing.T) {
	t.Parallel()

	got := Entry(journal.Entry{ID: 2, Error: "inference: boom"}, Options{})
	assert.Contains(t, got, colorError+"erro"+colorReset)
	assert.True(t, strings.HasSuffix(got, "inference: boom"))
}
