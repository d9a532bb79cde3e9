package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/session"
)

func promptCmd() *cobra.Command {
	var count string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent for the last N messages",
		Long:  `Builds the summarization prompt exactly as the chat would, without contacting the model. Useful for checking a custom prompt_template.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), setupOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			msgs, err := a.loadMessages()
			if err != nil {
				return err
			}

			if count == "" {
				count = strconv.Itoa(a.cfg.DefaultWindow)
			}
			n, err := session.ParseWindowSize(count)
			if err != nil {
				return err
			}

			window := chat.SelectLast(msgs, n)
			if len(window) == 0 {
				return session.ErrEmptyWindow
			}

			text, err := a.builder.Build(window)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "# template: %s, %d de %d mensagens\n", a.builder.Source(), len(window), len(msgs))
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&count, "count", "n", "", "Number of most recent messages (default from config)")
	return cmd
}
