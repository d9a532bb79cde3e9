package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/Zuo-Peng/zip/internal/chat"
)

const defaultTemplateName = "summary.tmpl"

// defaultFS stores the built-in summary template.
//
//go:embed templates/*.tmpl
var defaultFS embed.FS

// Vars is the data passed to a summary template.
type Vars struct {
	Count int
	Lines []Line
}

type Line struct {
	Author  string
	Content string
}

// Builder renders a window of messages into a summarization prompt.
type Builder struct {
	tmpl   *template.Template
	source string // "embedded" or the override file path
}

// Default returns a builder using the embedded template.
func Default() *Builder {
	raw, err := defaultFS.ReadFile("templates/" + defaultTemplateName)
	if err != nil {
		panic(fmt.Sprintf("read embedded template: %v", err))
	}
	return &Builder{
		tmpl:   template.Must(template.New(defaultTemplateName).Parse(string(raw))),
		source: "embedded",
	}
}

// Load returns a builder for the template at path, or the default one when
// path is empty.
func Load(path string) (*Builder, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template %q: %w", path, err)
	}
	tmpl, err := template.New(defaultTemplateName).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse prompt template %q: %w", path, err)
	}
	// fields are only resolved on execution
	sample := Vars{Count: 1, Lines: []Line{{Author: "a", Content: "b"}}}
	if err := tmpl.Execute(io.Discard, sample); err != nil {
		return nil, fmt.Errorf("check prompt template %q: %w", path, err)
	}
	return &Builder{tmpl: tmpl, source: path}, nil
}

func (b *Builder) Source() string {
	return b.source
}

// Build renders window in order. Only author and content are used.
// Continuation lines of multi-line content are indented so they cannot be
// read as separate messages.
func (b *Builder) Build(window []chat.Message) (string, error) {
	vars := Vars{Count: len(window), Lines: make([]Line, 0, len(window))}
	for _, m := range window {
		vars.Lines = append(vars.Lines, Line{Author: m.Author, Content: indentContinuation(m.Content)})
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func indentContinuation(content string) string {
	return strings.ReplaceAll(content, "\n", "\n  ")
}
