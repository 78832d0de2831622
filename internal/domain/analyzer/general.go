package analyzer

import "github.com/alejandrodnm/matchlens/internal/domain"

// generalKinds son las estadísticas que promedia el GeneralStatsAnalyzer, en el
// orden en que se presentan.
var generalKinds = []domain.StatKind{
	domain.StatShotsTotal,
	domain.StatShotsOnTarget,
	domain.StatShotsOffTarget,
	domain.StatShotsBlocked,
	domain.StatShotsInsideBox,
	domain.StatShotsOutsideBox,
	domain.StatPossession,
	domain.StatOffsides,
	domain.StatFouls,
	domain.StatPasses,
}

// StatAverage es la media a favor y en contra de una estadística.
// Matches cuenta los partidos en los que el proveedor envió el valor del equipo.
type StatAverage struct {
	Stat    string  `json:"stat"`
	For     float64 `json:"for"`
	Against float64 `json:"against"`
	Matches int     `json:"matches"`
}

// GeneralStats es la salida del GeneralStatsAnalyzer.
type GeneralStats struct {
	TeamID     int64         `json:"team_id"`
	GamesCount int           `json:"games_count"`
	Averages   []StatAverage `json:"averages"`
}

// Average devuelve la media de la estadística kind.
func (g GeneralStats) Average(kind domain.StatKind) StatAverage {
	for _, s := range g.Averages {
		if s.Stat == kind.String() {
			return s
		}
	}
	return StatAverage{Stat: kind.String()}
}

// GeneralStatsAnalyzer promedia estadísticas agregadas. No usa eventos.
type GeneralStatsAnalyzer struct {
	vocab       *domain.Vocabulary
	historySize int
}

// NewGeneralStatsAnalyzer crea el analizador.
func NewGeneralStatsAnalyzer(opts Options) *GeneralStatsAnalyzer {
	opts = opts.withDefaults()
	return &GeneralStatsAnalyzer{vocab: opts.Vocabulary, historySize: opts.HistorySize}
}

// Analyze procesa el historial de teamID. Las medias se dividen entre el número
// de partidos del historial: un partido sin la estadística cuenta como cero.
func (a *GeneralStatsAnalyzer) Analyze(history []domain.MatchRecord, teamID int64) GeneralStats {
	history = NormalizeTeamHistory(history, teamID, a.historySize)
	games := len(history)

	sumFor := make([]float64, len(generalKinds))
	sumAgainst := make([]float64, len(generalKinds))
	seen := make([]int, len(generalKinds))

	for _, m := range history {
		opp, _ := m.Opponent(teamID)
		for i, kind := range generalKinds {
			v, ok := a.vocab.Stat(m, kind, teamID)
			if ok {
				seen[i]++
			}
			sumFor[i] += v
			against, _ := a.vocab.Stat(m, kind, opp.TeamID)
			sumAgainst[i] += against
		}
	}

	out := GeneralStats{
		TeamID:     teamID,
		GamesCount: games,
		Averages:   make([]StatAverage, len(generalKinds)),
	}
	for i, kind := range generalKinds {
		out.Averages[i] = StatAverage{
			Stat:    kind.String(),
			For:     domain.Average(sumFor[i], games),
			Against: domain.Average(sumAgainst[i], games),
			Matches: seen[i],
		}
	}
	return out
}
