package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/zip/internal/chat"
	"github.com/Zuo-Peng/zip/internal/config"
	"github.com/Zuo-Peng/zip/internal/engine"
	"github.com/Zuo-Peng/zip/internal/journal"
	"github.com/Zuo-Peng/zip/internal/logging"
	"github.com/Zuo-Peng/zip/internal/metrics"
	"github.com/Zuo-Peng/zip/internal/prompt"
	"github.com/Zuo-Peng/zip/internal/session"
	"github.com/Zuo-Peng/zip/internal/transcript"
)

type setupOptions struct {
	engine  bool // initialize the inference engine
	journal bool // open the summary journal
	console bool // log to stderr as well (forced on by --verbose)
}

// app holds everything a command needs, built from config.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	builder *prompt.Builder

	engine    *engine.Engine
	engineErr error

	journal *journal.DB

	closers []io.Closer
	metrics *http.Server
}

func setup(ctx context.Context, opts setupOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if opts.console || verbose {
		logOpts.Console = os.Stderr
	}
	logger, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  logger,
		closers: []io.Closer{logCloser},
	}

	a.builder, err = prompt.Load(cfg.PromptTemplate)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if opts.journal {
		a.journal, err = journal.OpenDB(cfg.DBPath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("journal: %w", err)
		}
		a.closers = append(a.closers, a.journal)
	}

	if opts.engine {
		a.engine, a.engineErr = engine.Initialize(ctx, engine.Options{
			ServerURL:   cfg.Engine.ServerURL,
			Model:       cfg.Engine.Model,
			MaxTokens:   cfg.Engine.MaxTokens,
			Temperature: cfg.Engine.Temperature,
		})
		if a.engineErr != nil {
			// the chat stays usable; summaries report the failure
			logger.Error().Err(a.engineErr).Msg("engine init failed")
		} else {
			logger.Info().Str("model", a.engine.Model()).Msg("engine ready")
			a.closers = append(a.closers, a.engine)
		}
	}

	if metricsAddr != "" {
		a.serveMetrics(metricsAddr)
	}

	logger.Debug().Str("config", cfg.Path).Str("prompt", a.builder.Source()).Msg("setup complete")
	return a, nil
}

// coordinator builds a session over the configured conversation.
func (a *app) coordinator() (*session.Coordinator, error) {
	msgs, err := a.loadMessages()
	if err != nil {
		return nil, err
	}

	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithLocalAuthor(a.cfg.LocalAuthor),
	}
	var eng engine.Summarizer
	if a.engine != nil {
		eng = a.engine
	} else if a.engineErr != nil {
		opts = append(opts, session.WithEngineError(a.engineErr))
	}
	return session.New(chat.NewLog(msgs...), a.builder, eng, opts...), nil
}

// loadMessages picks the starting conversation: --transcript, then the
// configured transcript, then the built-in samples if enabled.
func (a *app) loadMessages() ([]chat.Message, error) {
	path := transcriptPath
	if path == "" {
		path = a.cfg.Transcript
	}
	if path != "" {
		msgs, stats, err := transcript.Load(path)
		if err != nil {
			return nil, err
		}
		a.logger.Info().
			Str("path", path).
			Int("loaded", stats.Loaded).
			Int("skipped", stats.Skipped).
			Msg("transcript loaded")
		return msgs, nil
	}
	if a.cfg.SeedSamples {
		return chat.SampleMessages(), nil
	}
	return nil, nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	a.metrics = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := a.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("metrics server")
		}
	}()
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = a.metrics.Shutdown(ctx)
		cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close")
		}
	}
}
