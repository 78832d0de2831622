package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

// Config contiene la configuración del servicio de análisis.
type Config struct {
	HistorySize int          // partidos por historial de contexto (0 = domain.DefaultHistorySize)
	Workers     int          // goroutines para AnalyzeMany (0 = NumCPU*2)
	Filter      FilterConfig // criterios de AnalyzeDate; vacío = todos
}

// Service es el orquestador: obtiene los historiales de ambos equipos, ejecuta
// el engine y devuelve el análisis unificado.
type Service struct {
	cfg      Config
	engine   *analyzer.Engine
	fixtures ports.FixtureProvider
	history  ports.HistoryProvider
	odds     ports.OddsProvider
	notifier ports.Notifier
	newID    func() string
}

// New crea un Service con todas las dependencias inyectadas.
// odds y notifier pueden ser nil.
func New(
	cfg Config,
	engine *analyzer.Engine,
	fixtures ports.FixtureProvider,
	history ports.HistoryProvider,
	odds ports.OddsProvider,
	notifier ports.Notifier,
) *Service {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = domain.DefaultHistorySize
	}
	return &Service{
		cfg:      cfg,
		engine:   engine,
		fixtures: fixtures,
		history:  history,
		odds:     odds,
		notifier: notifier,
		newID:    uuid.NewString,
	}
}

// Analyze resuelve el fixture y lo analiza.
func (s *Service) Analyze(ctx context.Context, fixtureID int64) (analyzer.FixtureAnalysis, error) {
	f, err := s.fixtures.FetchFixture(ctx, fixtureID)
	if err != nil {
		return analyzer.FixtureAnalysis{}, fmt.Errorf("analysis.Analyze: fetch fixture %d: %w", fixtureID, err)
	}
	return s.AnalyzeFixture(ctx, f)
}

// AnalyzeFixture hace fetch concurrente de los dos historiales (local en casa,
// visitante fuera) y de las cuotas; espera a ambos historiales antes de analizar.
// Un fallo al obtener cuotas no aborta el análisis: el calculador sale sin precios.
func (s *Service) AnalyzeFixture(ctx context.Context, f domain.Fixture) (analyzer.FixtureAnalysis, error) {
	start := time.Now()
	runID := s.newID()

	var (
		homeHistory, awayHistory []domain.MatchRecord
		odds                     []domain.MarketOdd
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := s.history.FetchTeamHistory(gctx, f.Home.TeamID, domain.LocationHome, f.StartingAt, s.cfg.HistorySize)
		if err != nil {
			return fmt.Errorf("home history (team %d): %w", f.Home.TeamID, err)
		}
		homeHistory = h
		return nil
	})
	g.Go(func() error {
		h, err := s.history.FetchTeamHistory(gctx, f.Away.TeamID, domain.LocationAway, f.StartingAt, s.cfg.HistorySize)
		if err != nil {
			return fmt.Errorf("away history (team %d): %w", f.Away.TeamID, err)
		}
		awayHistory = h
		return nil
	})
	if s.odds != nil {
		g.Go(func() error {
			o, err := s.odds.FetchOdds(gctx, f.ID)
			if err != nil {
				slog.Warn("odds unavailable", "fixture_id", f.ID, "err", err)
				return nil
			}
			odds = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return analyzer.FixtureAnalysis{}, fmt.Errorf("analysis.AnalyzeFixture: fixture %d: %w", f.ID, err)
	}

	slog.Debug("histories fetched",
		"fixture_id", f.ID,
		"run_id", runID,
		"home_matches", len(homeHistory),
		"away_matches", len(awayHistory),
		"odds", len(odds),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	result := s.engine.Analyze(f, homeHistory, awayHistory, odds)
	result.RunID = runID

	slog.Info("fixture analyzed",
		"fixture_id", f.ID,
		"run_id", runID,
		"home", f.Home.Name,
		"away", f.Away.Name,
		"value_bets", len(result.Calculator.ValueBets()),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}

// AnalyzeDate analiza todos los fixtures del día, descarta los que no pasan
// cfg.Filter, notifica el resto y los devuelve ordenados por hora de inicio.
func (s *Service) AnalyzeDate(ctx context.Context, date time.Time) ([]analyzer.FixtureAnalysis, error) {
	fixtures, err := s.fixtures.FetchFixturesOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("analysis.AnalyzeDate: fetch fixtures: %w", err)
	}

	results := s.AnalyzeMany(ctx, fixtures)
	sortByKickoff(results)
	if kept := NewFilter(s.cfg.Filter).Apply(results); len(kept) != len(results) {
		slog.Debug("fixtures filtered out", "analyzed", len(results), "kept", len(kept))
		results = kept
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, results); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	return results, nil
}

// Momentum devuelve la línea de presión de un partido almacenado.
func (s *Service) Momentum(ctx context.Context, fixtureID int64) (analyzer.Momentum, error) {
	m, err := s.fixtures.FetchMatch(ctx, fixtureID)
	if err != nil {
		return analyzer.Momentum{}, fmt.Errorf("analysis.Momentum: fetch match %d: %w", fixtureID, err)
	}
	return s.engine.Momentum(m), nil
}

// sortByKickoff ordena por hora de inicio y, a igual hora, por id.
func sortByKickoff(results []analyzer.FixtureAnalysis) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Fixture, results[j].Fixture
		if !a.StartingAt.Equal(b.StartingAt) {
			return a.StartingAt.Before(b.StartingAt)
		}
		return a.ID < b.ID
	})
}
