package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/zip/internal/config"
	"github.com/Zuo-Peng/zip/internal/engine"
	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/prompt"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: config, model server, prompt template and journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if cfg.Path == "" {
				fmt.Println("  File: (none, using defaults)")
			} else {
				fmt.Printf("  File: %s\n", cfg.Path)
			}
			fmt.Printf("  Log:  %s (%s)\n", cfg.LogFile, cfg.LogLevel)
			fmt.Printf("  Default window: %d\n", cfg.DefaultWindow)
			if cfg.Transcript != "" {
				checkFile("Transcript", cfg.Transcript)
			}

			fmt.Println("\n=== Engine ===")
			fmt.Printf("  Server: %s\n", cfg.Engine.ServerURL)
			fmt.Printf("  Model:  %s\n", cfg.Engine.Model)
			eng, err := engine.Initialize(cmd.Context(), engine.Options{
				ServerURL: cfg.Engine.ServerURL,
				Model:     cfg.Engine.Model,
				MaxTokens: cfg.Engine.MaxTokens,
			})
			if err != nil {
				fmt.Printf("  Status: UNAVAILABLE (%v)\n", err)
			} else {
				fmt.Println("  Status: OK")
				eng.Close()
			}

			fmt.Println("\n=== Prompt ===")
			b, err := prompt.Load(cfg.PromptTemplate)
			if err != nil {
				fmt.Printf("  Status: ERROR (%v)\n", err)
			} else {
				fmt.Printf("  Template: %s (OK)\n", b.Source())
			}

			fmt.Println("\n=== Journal ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first summary)")
				return nil
			}

			db, err := journal.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			total, err := db.Count()
			if err != nil {
				return fmt.Errorf("count summaries: %w", err)
			}
			failed, err := db.FailureCount()
			if err != nil {
				return fmt.Errorf("count failures: %w", err)
			}
			fmt.Printf("  Summaries: %d\n", total)
			fmt.Printf("  Failures:  %d\n", failed)

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeKB := float64(info.Size()) / 1024
				fmt.Printf("\n=== DB Size: %.1f KB ===\n", sizeKB)
			}
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
