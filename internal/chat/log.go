package chat

// Log is the ordered, append-only message history of a chat session.
// It is owned by a single goroutine and is not safe for concurrent use.
type Log struct {
	messages []Message
	nextID   uint64
	subs     []func(Message)
}

// NewLog returns a log pre-seeded with the given messages, in order.
func NewLog(seed ...Message) *Log {
	l := &Log{nextID: 1}
	for _, m := range seed {
		l.Append(m)
	}
	return l
}

// Append adds m to the end of the log and returns it with its assigned ID.
// Any ID already set on m is overwritten.
func (l *Log) Append(m Message) Message {
	if l.nextID == 0 {
		l.nextID = 1
	}
	m.ID = l.nextID
	l.nextID++
	l.messages = append(l.messages, m)
	for _, fn := range l.subs {
		fn(m)
	}
	return m
}

// Snapshot returns a copy of the current messages.
func (l *Log) Snapshot() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int {
	return len(l.messages)
}

// Subscribe registers fn to be called after every Append.
func (l *Log) Subscribe(fn func(Message)) {
	l.subs = append(l.subs, fn)
}
