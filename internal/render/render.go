package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/journal"
)

const (
	colorReset = "\033[0m"
	colorLocal = "\033[1;34m" // bold blue
	colorOther = "\033[1;32m" // bold green
	colorError = "\033[1;31m" // bold red
	colorDim   = "\033[2m"
)

type Options struct {
	Width   int  // wrap width (0 = no wrap)
	NoColor bool // plain text, for pipes
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Window renders the selected messages as terminal text. total is the size
// of the whole log, used to note how many older messages were left out.
func Window(window []chat.Message, total int, opts Options) string {
	paint := opts.paint

	var b strings.Builder
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}

	writeLine(paint(colorDim, fmt.Sprintf("--- %d de %d mensagens ---", len(window), total)))
	if skipped := total - len(window); skipped > 0 {
		writeLine(paint(colorDim, fmt.Sprintf("... (%d mensagens anteriores) ...", skipped)))
	}

	for _, m := range window {
		color := colorOther
		if m.IsLocal() {
			color = colorLocal
		}
		writeLine(fmt.Sprintf("%s %s", paint(color, m.Author), paint(colorDim, m.Timestamp)))
		for _, tl := range strings.Split(indentLines(m.Content, "  "), "\n") {
			writeLine(tl)
		}
	}
	return b.String()
}

// Entry renders one journal row as a tab-separated line: id, start time,
// status, messages used/requested, duration and the start of the result (or
// the error for failed summaries).
func Entry(e journal.Entry, opts Options) string {
	status := opts.paint(colorOther, "ok")
	text := e.Result
	if !e.OK() {
		status = opts.paint(colorError, "erro")
		text = e.Error
	}
	return fmt.Sprintf("%d\t%s\t%s\t%d/%d msgs\t%s\t%s",
		e.ID,
		opts.paint(colorDim, e.StartedAt.Local().Format("2006-01-02 15:04")),
		status,
		e.MessageCount, e.WindowSize,
		e.Duration.Round(100*time.Millisecond),
		Truncate(text, 60, "…"),
	)
}

func (o Options) paint(color, s string) string {
	if o.NoColor {
		return s
	}
	return color + s + colorReset
}

// Truncate cuts s to width visible columns, adding tail when it was cut.
func Truncate(s string, width int, tail string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, tail)
}
