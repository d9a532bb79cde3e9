package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/zip/internal/journal"
)

// Entry writes a recorded summary to a markdown file in dir and opens it in
// $EDITOR (less when unset), positioned at the summary text.
func Entry(e journal.Entry, dir string) error {
	path, line, err := WriteEntry(e, dir)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, path, line)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// WriteEntry renders e as markdown into dir and returns the file path and the
// line where the summary (or error) starts.
func WriteEntry(e journal.Entry, dir string) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Resumo %d\n\n", e.ID)
	fmt.Fprintf(&b, "- Sessão: %s\n", e.SessionID)
	fmt.Fprintf(&b, "- Modelo: %s\n", e.Model)
	fmt.Fprintf(&b, "- Início: %s\n", e.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Mensagens: %d (pedido: %d)\n\n", e.MessageCount, e.WindowSize)

	body := e.Result
	if !e.OK() {
		b.WriteString("## Erro\n\n")
		body = e.Error
	} else {
		b.WriteString("## Resumo\n\n")
	}
	line := strings.Count(b.String(), "\n") + 1
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n\n## Prompt\n\n")
	b.WriteString(e.Prompt)
	b.WriteString("\n")

	path := filepath.Join(dir, fmt.Sprintf("zip-summary-%d.md", e.ID))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, line, nil
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
