package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/matchlens/config"
	"github.com/alejandrodnm/matchlens/internal/adapters/notify"
	"github.com/alejandrodnm/matchlens/internal/adapters/storage"
	"github.com/alejandrodnm/matchlens/internal/application/analysis"
	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	importPath := flag.String("import", "", "load a provider JSON dump into storage (\"-\" uses dataset.path)")
	fixtureID := flag.Int64("fixture", 0, "analyze a stored fixture by id")
	date := flag.String("date", "", "analyze every stored fixture on YYYY-MM-DD")
	momentum := flag.Bool("momentum", false, "with -fixture: print the pressure timeline instead")
	table := flag.Bool("table", false, "print full tables (default: compact 1-line)")
	asJSON := flag.Bool("json", false, "print the raw JSON contract")
	valueOnly := flag.Bool("value-only", false, "with -date: keep only fixtures with value bets")
	serve := flag.Bool("serve", false, "start the HTTP API")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	vocab, err := domain.BuildVocabulary(cfg.Vocabulary.Events, cfg.Vocabulary.Stats)
	if err != nil {
		slog.Error("invalid vocabulary", "err", err)
		os.Exit(1)
	}

	slog.Info("matchlens starting",
		"config", *configPath,
		"dsn", cfg.Storage.DSN,
		"history_size", cfg.Analysis.HistorySize,
		"value_edge", cfg.Analysis.ValueEdge,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	engine := analyzer.NewEngine(analyzer.Options{
		Vocabulary:  vocab,
		HistorySize: cfg.Analysis.HistorySize,
		RaceTargets: cfg.Analysis.RaceTargets,
		ValueEdge:   cfg.Analysis.ValueEdge,
	})

	// con -json el informe de consola no se imprime
	console := notify.NewConsole(*table)
	var notifier ports.Notifier
	if !*asJSON {
		notifier = console
	}

	svc := analysis.New(analysis.Config{
		HistorySize: cfg.Analysis.HistorySize,
		Workers:     cfg.Analysis.Workers,
		Filter: analysis.FilterConfig{
			MinGames:  cfg.Analysis.MinGames,
			OnlyValue: cfg.Analysis.OnlyValue || *valueOnly,
			MinEdge:   cfg.Analysis.MinEdge,
		},
	}, engine, store, store, store, notifier)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := &app{
		svc:     svc,
		store:   store,
		console: console,
		json:    *asJSON,
		out:     os.Stdout,
	}

	ran := false
	if *importPath != "" {
		path := *importPath
		if path == "-" {
			path = cfg.Dataset.Path
		}
		if err := app.runImport(ctx, path); err != nil {
			fail(err)
		}
		ran = true
	}

	switch {
	case *fixtureID != 0 && *momentum:
		err = app.runMomentum(ctx, *fixtureID)
	case *fixtureID != 0:
		err = app.runFixture(ctx, *fixtureID)
	case *date != "":
		err = app.runDate(ctx, *date)
	case *serve:
		err = app.runServe(ctx, cfg.HTTP.Addr)
	default:
		if !ran {
			flag.Usage()
			os.Exit(2)
		}
	}
	if err != nil {
		fail(err)
	}

	slog.Debug("matchlens stopped cleanly")
}

func fail(err error) {
	slog.Error("matchlens exited with error", "err", err)
	os.Exit(1)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stdout queda para el informe / JSON; los logs van a stderr
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
