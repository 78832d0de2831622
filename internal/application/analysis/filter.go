package analysis

import (
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

// FilterConfig contiene los criterios para quedarse con un análisis de un lote.
type FilterConfig struct {
	// MinGames descarta fixtures donde alguno de los dos equipos tiene menos
	// partidos de historial que esto.
	MinGames int
	// OnlyValue si true, solo incluye fixtures con al menos una value bet.
	OnlyValue bool
	// MinEdge exige que alguna value bet supere este edge (puntos porcentuales).
	MinEdge float64
}

// Filter aplica los filtros configurados sobre los análisis de un lote.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Apply devuelve los análisis que pasan todos los filtros, en el mismo orden.
func (f *Filter) Apply(results []analyzer.FixtureAnalysis) []analyzer.FixtureAnalysis {
	out := make([]analyzer.FixtureAnalysis, 0, len(results))
	for _, r := range results {
		if f.passes(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *Filter) passes(r analyzer.FixtureAnalysis) bool {
	if f.cfg.MinGames > 0 &&
		(r.Home.Goals.GamesCount < f.cfg.MinGames || r.Away.Goals.GamesCount < f.cfg.MinGames) {
		return false
	}

	bets := r.Calculator.ValueBets()
	if f.cfg.OnlyValue && len(bets) == 0 {
		return false
	}
	if f.cfg.MinEdge > 0 {
		for _, b := range bets {
			if b.Edge != nil && *b.Edge >= f.cfg.MinEdge {
				return true
			}
		}
		return false
	}
	return true
}
