package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLog(n int) []Message {
	l := NewLog()
	for i := 0; i < n; i++ {
		l.Append(Message{Timestamp: fmt.Sprintf("09:%02d", i), Author: "Ana", Content: fmt.Sprintf("msg %d", i)})
	}
	return l.Snapshot()
}

func TestSelectLastNonPositiveIsEmpty(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 5} {
		for _, n := range []int{0, -1, -100} {
			got := SelectLast(makeLog(size), n)
			assert.NotNil(t, got)
			assert.Empty(t, got, "size=%d n=%d", size, n)
		}
	}
}

func TestSelectLastLargerThanLogReturnsAll(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 5} {
		msgs := makeLog(size)
		for _, n := range []int{size, size + 1, 1000} {
			if n <= 0 {
				continue
			}
			assert.Equal(t, msgs, SelectLast(msgs, n), "size=%d n=%d", size, n)
		}
	}
}

func TestSelectLastSuffix(t *testing.T) {
	t.Parallel()

	msgs := makeLog(7)
	for n := 1; n < len(msgs); n++ {
		got := SelectLast(msgs, n)
		require.Len(t, got, n)
		assert.Equal(t, msgs[len(msgs)-n:], got)
	}
}

func TestSelectLastDoesNotAlias(t *testing.T) {
	t.Parallel()

	msgs := makeLog(3)
	got := SelectLast(msgs, 2)
	got[0].Content = "changed"
	assert.Equal(t, "msg 1", msgs[1].Content)
}

func TestSelectLastScenario(t *testing.T) {
	t.Parallel()

	l := NewLog(
		Message{Timestamp: "09:00", Author: "Eu", Content: "oi"},
		Message{Timestamp: "09:01", Author: "Ana", Content: "tudo bem?"},
		Message{Timestamp: "09:02", Author: "Eu", Content: "sim, e você"},
	)

	got := SelectLast(l.Snapshot(), 2)
	require.Len(t, got, 2)
	assert.Equal(t, "09:01", got[0].Timestamp)
	assert.Equal(t, "tudo bem?", got[0].Content)
	assert.Equal(t, "09:02", got[1].Timestamp)
	assert.Equal(t, "sim, e você", got[1].Content)
}
