package chat

// SelectLast returns the last min(n, len(msgs)) messages, oldest first.
// n <= 0 selects nothing. The result never shares memory with msgs.
func SelectLast(msgs []Message, n int) []Message {
	if n <= 0 {
		return []Message{}
	}
	start := len(msgs) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(msgs)-start)
	copy(out, msgs[start:])
	return out
}
