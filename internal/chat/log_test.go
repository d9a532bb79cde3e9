package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPlacesMessageLast(t *testing.T) {
	t.Parallel()

	l := NewLog(SampleMessages()...)
	before := l.Snapshot()

	m := l.Append(Message{Timestamp: "11:00", Author: LocalAuthor, Content: "novo"})

	after := l.Snapshot()
	require.Len(t, after, len(before)+1)
	assert.Equal(t, m, after[len(after)-1])
	assert.Len(t, before, len(SampleMessages()), "earlier snapshot must not see the append")
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	t.Parallel()

	l := NewLog(Message{Author: "Ana", Content: "oi"})
	snap := l.Snapshot()
	snap[0].Content = "alterado"

	assert.Equal(t, "oi", l.Snapshot()[0].Content)
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	l := NewLog()
	a := l.Append(Message{Author: "Ana", Content: "igual"})
	b := l.Append(Message{Author: "Ana", Content: "igual"})
	c := l.Append(Message{ID: 99, Author: "Bruno", Content: "outro"})

	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)
	assert.Equal(t, uint64(3), c.ID, "caller-provided IDs are replaced")
	assert.NotEqual(t, a.ID, b.ID, "duplicate content must not collide")
}

func TestZeroValueLogIsUsable(t *testing.T) {
	t.Parallel()

	var l Log
	m := l.Append(Message{Content: "x"})
	assert.Equal(t, uint64(1), m.ID)
	assert.Equal(t, 1, l.Len())
}

func TestSubscribersSeeEveryAppend(t *testing.T) {
	t.Parallel()

	l := NewLog()
	var seen []string
	l.Subscribe(func(m Message) { seen = append(seen, m.Content) })

	l.Append(Message{Content: "a"})
	l.Append(Message{Content: ""})
	l.Append(Message{Content: "c"})

	assert.Equal(t, []string{"a", "", "c"}, seen)
}

func TestIsLocal(t *testing.T) {
	t.Parallel()

	assert.True(t, Message{Author: LocalAuthor}.IsLocal())
	assert.False(t, Message{Author: "Ana"}.IsLocal())
}
