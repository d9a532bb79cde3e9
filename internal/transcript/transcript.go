package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Zuo-Peng/zip/internal/chat"
)

const maxLineSize = 1024 * 1024 // 1MB

// record is one JSONL line. "date" is accepted as an alias of "timestamp".
type record struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

// Stats describes what Read kept and skipped.
type Stats struct {
	Lines   int
	Loaded  int
	Skipped int
}

// Load reads a JSONL transcript file.
func Load(path string) ([]chat.Message, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()

	msgs, stats, err := Read(f)
	if err != nil {
		return nil, stats, fmt.Errorf("read transcript %s: %w", path, err)
	}
	return msgs, stats, nil
}

// Read parses JSONL messages in file order. Blank lines, malformed lines and
// lines without an author are skipped; empty content is kept.
func Read(r io.Reader) ([]chat.Message, Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var stats Stats
	var msgs []chat.Message
	for scanner.Scan() {
		stats.Lines++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			stats.Skipped++
			continue
		}
		author := strings.TrimSpace(rec.Author)
		if author == "" {
			stats.Skipped++
			continue
		}

		ts := rec.Timestamp
		if ts == "" {
			ts = rec.Date
		}
		msgs = append(msgs, chat.Message{
			Timestamp: ts,
			Author:    author,
			Content:   rec.Content,
		})
		stats.Loaded++
	}
	return msgs, stats, scanner.Err()
}
