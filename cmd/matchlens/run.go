package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alejandrodnm/matchlens/internal/adapters/dataset"
	"github.com/alejandrodnm/matchlens/internal/adapters/httpapi"
	"github.com/alejandrodnm/matchlens/internal/adapters/notify"
	"github.com/alejandrodnm/matchlens/internal/application/analysis"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

// app agrupa lo que necesitan los modos del CLI.
type app struct {
	svc     *analysis.Service
	store   ports.Storage
	console *notify.Console
	json    bool
	out     io.Writer
}

func (a *app) runImport(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("import: no dataset path (set dataset.path or pass -import <file>)")
	}
	if _, err := dataset.Import(ctx, path, a.store); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

func (a *app) runFixture(ctx context.Context, id int64) error {
	res, err := a.svc.Analyze(ctx, id)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(res)
	}
	return a.console.Notify(ctx, []analyzer.FixtureAnalysis{res})
}

func (a *app) runMomentum(ctx context.Context, id int64) error {
	res, err := a.svc.Momentum(ctx, id)
	if err != nil {
		return err
	}
	if a.json {
		return a.printJSON(res)
	}
	a.console.PrintMomentum(res)
	return nil
}

// runDate analiza el día completo. En modo consola el servicio ya notifica.
func (a *app) runDate(ctx context.Context, day string) error {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return fmt.Errorf("date: expected YYYY-MM-DD, got %q", day)
	}
	start := time.Now()
	results, err := a.svc.AnalyzeDate(ctx, date)
	if err != nil {
		return err
	}
	slog.Info("date analyzed",
		"date", day,
		"fixtures", len(results),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	if a.json {
		return a.printJSON(results)
	}
	return nil
}

func (a *app) runServe(ctx context.Context, addr string) error {
	return httpapi.Serve(ctx, addr, httpapi.NewRouter(a.svc))
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
