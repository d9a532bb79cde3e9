package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/open"
	"github.com/Zuo-Peng/zip/internal/render"
)

func historyCmd() *cobra.Command {
	var limit int
	var grep string
	var okOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past summaries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openJournal(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := db.List(journal.ListOptions{
				Grep:   grep,
				Limit:  limit,
				OKOnly: okOnly,
			})
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "Nenhum resumo registrado.")
				return nil
			}

			out := cmd.OutOrStdout()
			opts := render.Options{NoColor: !isTerminal(out)}
			for _, e := range entries {
				fmt.Fprintln(out, render.Entry(e, opts))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries (0 = no limit)")
	cmd.Flags().StringVar(&grep, "grep", "", "Only summaries containing this text")
	cmd.Flags().BoolVar(&okOnly, "ok", false, "Hide failed summaries")

	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyOpenCmd())
	return cmd
}

func historyShowCmd() *cobra.Command {
	var withPrompt bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one recorded summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			db, cleanup, err := openJournal(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			e, err := db.Get(id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("no summary with id %d", id)
			}

			fmt.Printf("Sessão:    %s\n", e.SessionID)
			fmt.Printf("Modelo:    %s\n", e.Model)
			fmt.Printf("Início:    %s\n", e.StartedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Duração:   %s\n", e.Duration)
			fmt.Printf("Mensagens: %d (pedido: %d)\n", e.MessageCount, e.WindowSize)
			if withPrompt {
				fmt.Printf("\n=== Prompt ===\n%s\n", e.Prompt)
			}
			if !e.OK() {
				fmt.Printf("\n=== Erro ===\n%s\n", e.Error)
				return nil
			}
			fmt.Printf("\n=== Resumo ===\n%s\n", strings.TrimSpace(e.Result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPrompt, "prompt", false, "Also print the prompt sent to the model")
	return cmd
}

func historyOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a recorded summary in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			db, cleanup, err := openJournal(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			e, err := db.Get(id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("no summary with id %d", id)
			}
			return open.Entry(*e, filepath.Join(os.TempDir(), "zip"))
		},
	}
}

// isTerminal reports whether w is a terminal; ANSI colors are only written
// to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func openJournal(cmd *cobra.Command) (*journal.DB, func(), error) {
	a, err := setup(cmd.Context(), setupOptions{journal: true})
	if err != nil {
		return nil, nil, err
	}
	return a.journal, a.Close, nil
}
