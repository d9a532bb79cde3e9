package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/zip/internal/journal"
)

// seedJournal points config at a fresh home and journal and records entries.
func seedJournal(t *testing.T, entries ...journal.Entry) {
	t.Helper()

	home := t.TempDir()
	dbPath := filepath.Join(home, "zip.db")
	t.Setenv("HOME", home)
	t.Setenv("ZIP_DB_PATH", dbPath)

	db, err := journal.OpenDB(dbPath)
	require.NoError(t, err)
	for _, e := range entries {
		_, err := db.Record(e)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
}

func runHistory(t *testing.T, args ...string) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := historyCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Execute())
	return stdout.String(), stderr.String()
}

func TestHistoryOKOnlyWithLimit(t *testing.T) {
	seedJournal(t,
		journal.Entry{SessionID: "s", TaskID: 1, Result: "resumo bom"},
		journal.Entry{SessionID: "s", TaskID: 2, Error: "boom"},
		journal.Entry{SessionID: "s", TaskID: 3, Error: "boom"},
		journal.Entry{SessionID: "s", TaskID: 4, Error: "boom"},
	)

	stdout, _ := runHistory(t, "--ok", "--limit", "2")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "resumo bom"))
}

func TestHistoryPipedOutputIsPlain(t *testing.T) {
	seedJournal(t,
		journal.Entry{SessionID: "s", TaskID: 1, Result: "resumo bom"},
		journal.Entry{SessionID: "s", TaskID: 2, Error: "boom"},
	)

	stdout, _ := runHistory(t)
	assert.NotContains(t, stdout, "\033[")
	assert.Contains(t, stdout, "\terro\t")
	assert.Contains(t, stdout, "\tok\t")
}

func TestHistoryEmpty(t *testing.T) {
	seedJournal(t)

	stdout, stderr := runHistory(t, "--ok")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Nenhum resumo registrado.")
}
