package analysis

// concurrent.go: worker pool para analizar muchos fixtures en paralelo.

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

// AnalyzeMany analiza todos los fixtures usando un worker pool. Los fixtures que
// fallan se descartan con un log en debug; el orden del resultado no está definido.
//
// Si cfg.Workers <= 0 usa runtime.NumCPU() × 2.
func (s *Service) AnalyzeMany(ctx context.Context, fixtures []domain.Fixture) []analyzer.FixtureAnalysis {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	workCh := make(chan domain.Fixture, len(fixtures))
	resultCh := make(chan analyzer.FixtureAnalysis, len(fixtures))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range workCh {
				if ctx.Err() != nil {
					continue
				}
				res, err := s.AnalyzeFixture(ctx, f)
				if err != nil {
					slog.Debug("analyze failed",
						"fixture_id", f.ID,
						"err", err,
					)
					continue
				}
				resultCh <- res
			}
		}()
	}

	for _, f := range fixtures {
		workCh <- f
	}
	close(workCh)

	// Cerrar resultCh cuando todos los workers terminen.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]analyzer.FixtureAnalysis, 0, len(fixtures))
	for res := range resultCh {
		results = append(results, res)
	}

	slog.Debug("concurrent analysis complete",
		"fixtures_queued", len(fixtures),
		"analyzed", len(results),
		"workers", workers,
	)
	return results
}
