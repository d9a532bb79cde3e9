package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/render"
)

func summarizeCmd() *cobra.Command {
	var count string
	var showWindow, raw bool

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the last N messages without opening the chat",
		Long: `Runs one summarization over the conversation (samples or --transcript) and
prints the result. The outcome is recorded in the summary journal like any
summary requested from the chat screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := setup(ctx, setupOptions{engine: true, journal: true})
			if err != nil {
				return err
			}
			defer a.Close()

			coord, err := a.coordinator()
			if err != nil {
				return err
			}

			if count == "" {
				count = strconv.Itoa(a.cfg.DefaultWindow)
			}
			task, err := coord.SubmitSummarization(count)
			if err != nil {
				return err
			}

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			width := 100
			if isTTY {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
					width = w
				}
			}

			if showWindow {
				fmt.Fprint(os.Stderr, render.Window(task.Window, len(coord.Messages()), render.Options{
					Width:   width,
					NoColor: !isTTY,
				}))
				fmt.Fprintln(os.Stderr)
			}
			fmt.Fprintf(os.Stderr, "Resumindo %d mensagens com %s...\n", len(task.Window), a.cfg.Engine.Model)

			outcome := task.Run(ctx)
			coord.Complete(outcome)

			if _, err := a.journal.Record(journal.FromOutcome(coord.ID(), a.cfg.Engine.Model, outcome)); err != nil {
				a.logger.Error().Err(err).Msg("record summary")
			}
			if outcome.Err != nil {
				return fmt.Errorf("summarize: %w", outcome.Err)
			}

			fmt.Print(formatSummary(outcome.Summary, width, isTTY && !raw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&count, "count", "n", "", "Number of most recent messages to summarize (default from config)")
	cmd.Flags().BoolVar(&showWindow, "show-window", false, "Print the selected messages to stderr first")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the model output without markdown rendering")

	return cmd
}

// formatSummary renders markdown for terminals and leaves it alone otherwise.
func formatSummary(summary string, width int, pretty bool) string {
	out := strings.TrimSpace(summary) + "\n"
	if !pretty {
		return out
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return out
	}
	rendered, err := r.Render(summary)
	if err != nil {
		return out
	}
	return rendered
}
