package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

// flags shared by every subcommand
var (
	transcriptPath string
	metricsAddr    string
	verbose        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "zip",
		Short:   "Chat in the terminal and summarize the conversation with a local model",
		Version: version,
		Args:    cobra.NoArgs,
		RunE:    runChat,
	}

	rootCmd.PersistentFlags().StringVar(&transcriptPath, "transcript", "", "Load the conversation from a JSONL transcript instead of the samples")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also log to stderr")

	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(promptCmd())
	rootCmd.AddCommand(doctorCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
