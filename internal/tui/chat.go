package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Zuo-Peng/zip/internal/chat"
)

// bubbleWidth is the widest a message bubble may get, border included.
func bubbleWidth(width int) int {
	w := width * 70 / 100
	if w < 20 {
		w = 20
	}
	return w
}

// renderMessages lays out the conversation, local messages on the right.
func renderMessages(msgs []chat.Message, width int) string {
	if len(msgs) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Align(lipgloss.Center).
			Render("Nenhuma mensagem")
	}

	blocks := make([]string, 0, len(msgs))
	for _, m := range msgs {
		blocks = append(blocks, renderBubble(m, width))
	}
	return strings.Join(blocks, "\n")
}

func renderBubble(m chat.Message, width int) string {
	// border (2) + padding (2)
	inner := bubbleWidth(width) - 4

	header := styleAuthor.Render(m.Author) + " " + styleTimestamp.Render("● "+m.Timestamp)
	body := wordwrap.String(m.Content, inner)

	style := styleBubbleOther
	align := lipgloss.Left
	if m.IsLocal() {
		style = styleBubbleLocal
		align = lipgloss.Right
	}

	bubble := style.Render(header + "\n" + body)
	return lipgloss.PlaceHorizontal(width, align, bubble)
}
