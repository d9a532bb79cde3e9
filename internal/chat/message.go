package chat

// LocalAuthor is the author name reserved for the person using this client.
const LocalAuthor = "Eu"

type Message struct {
	ID        uint64 // sequence number assigned by Log.Append, starts at 1
	Timestamp string // display label such as "09:01", never parsed
	Author    string
	Content   string
}

// IsLocal reports whether the message was written by the local user.
func (m Message) IsLocal() bool {
	return m.Author == LocalAuthor
}
