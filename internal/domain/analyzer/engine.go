package analyzer

import (
	"fmt"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// TeamAnalysis son las salidas de los cuatro analizadores para un equipo.
type TeamAnalysis struct {
	Team    domain.Participant `json:"team"`
	Goals   GoalStats          `json:"goals"`
	Corners CornerStats        `json:"corners"`
	Cards   CardStats          `json:"cards"`
	General GeneralStats       `json:"general"`
}

// PredictionRow es un mercado con el porcentaje de cada lado y su media.
type PredictionRow struct {
	Market   string `json:"market"`
	Home     int    `json:"home"`
	Away     int    `json:"away"`
	Combined int    `json:"combined"`
}

// FixtureAnalysis es el resultado unificado para un fixture. RunID lo asigna
// quien orquesta el análisis.
type FixtureAnalysis struct {
	RunID            string          `json:"run_id,omitempty"`
	Fixture          domain.Fixture  `json:"fixture"`
	Home             TeamAnalysis    `json:"home"`
	Away             TeamAnalysis    `json:"away"`
	Calculator       Calculator      `json:"calculator"`
	Prediction       ScorePrediction `json:"prediction"`
	PredictionsTable []PredictionRow `json:"predictions_table"`
}

// Engine agrupa los analizadores con una configuración común.
// Es inmutable tras su construcción y seguro para uso concurrente.
type Engine struct {
	goals     *GoalAnalyzer
	corners   *CornerAnalyzer
	cards     *CardAnalyzer
	general   *GeneralStatsAnalyzer
	momentum  *MomentumEstimator
	valueEdge float64
}

// NewEngine crea el engine con las opciones dadas.
func NewEngine(opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		goals:     NewGoalAnalyzer(opts),
		corners:   NewCornerAnalyzer(opts),
		cards:     NewCardAnalyzer(opts),
		general:   NewGeneralStatsAnalyzer(opts),
		momentum:  NewMomentumEstimator(opts),
		valueEdge: opts.ValueEdge,
	}
}

// AnalyzeTeam ejecuta los cuatro analizadores sobre el historial del equipo.
func (e *Engine) AnalyzeTeam(team domain.Participant, history []domain.MatchRecord) TeamAnalysis {
	return TeamAnalysis{
		Team:    team,
		Goals:   e.goals.Analyze(history, team.TeamID),
		Corners: e.corners.Analyze(history, team.TeamID),
		Cards:   e.cards.Analyze(history, team.TeamID),
		General: e.general.Analyze(history, team.TeamID),
	}
}

// Analyze produce el análisis completo: homeHistory son partidos del local en
// casa y awayHistory partidos del visitante fuera. odds puede ser nil.
func (e *Engine) Analyze(f domain.Fixture, homeHistory, awayHistory []domain.MatchRecord, odds []domain.MarketOdd) FixtureAnalysis {
	home := e.AnalyzeTeam(f.Home, homeHistory)
	away := e.AnalyzeTeam(f.Away, awayHistory)
	return e.Combine(f, home, away, odds)
}

// Combine construye los campos cruzados a partir de los análisis de cada equipo.
func (e *Engine) Combine(f domain.Fixture, home, away TeamAnalysis, odds []domain.MarketOdd) FixtureAnalysis {
	expGoals := NewExpectedGoals(home.Goals, away.Goals)
	expCorners := NewExpectedCorners(home.Corners, away.Corners)
	return FixtureAnalysis{
		Fixture: f,
		Home:    home,
		Away:    away,
		Calculator: Calculator{
			Goals:   CalculateGoals(expGoals, odds, e.valueEdge),
			Corners: CalculateCorners(expCorners, odds, e.valueEdge),
		},
		Prediction:       PredictScore(expGoals),
		PredictionsTable: PredictionsTable(home, away),
	}
}

// Momentum calcula la línea de presión de un partido.
func (e *Engine) Momentum(m domain.MatchRecord) Momentum {
	return e.momentum.Estimate(m)
}

// PredictionsTable promedia, mercado a mercado, el porcentaje de cada lado.
func PredictionsTable(home, away TeamAnalysis) []PredictionRow {
	var rows []PredictionRow
	add := func(market string, h, a int) {
		rows = append(rows, PredictionRow{Market: market, Home: h, Away: a, Combined: domain.MeanPct(h, a)})
	}

	for _, line := range goalTotalLines {
		add(fmt.Sprintf("goals_over_%s", formatLine(line)),
			home.Goals.OverPercentage(line), away.Goals.OverPercentage(line))
	}
	add("btts", home.Goals.Markets.BTTS, away.Goals.Markets.BTTS)
	add("clean_sheet", home.Goals.Markets.CleanSheets, away.Goals.Markets.CleanSheets)
	add("failed_to_score", home.Goals.Markets.FailedToScore, away.Goals.Markets.FailedToScore)
	add("first_to_score", home.Goals.FirstToScore.Percentage, away.Goals.FirstToScore.Percentage)
	for _, line := range cornerTotalLines {
		add(fmt.Sprintf("corners_over_%s", formatLine(line)),
			home.Corners.OverPercentage(line), away.Corners.OverPercentage(line))
	}
	for _, window := range []string{domain.LateFirstHalfWindow.Label, domain.LateMatchWindow.Label} {
		h, _ := findInterval(home.Corners.LateWindows, window)
		a, _ := findInterval(away.Corners.LateWindows, window)
		add("corner_"+window, h.Frequency, a.Frequency)
	}
	for _, line := range cardTotalLines {
		add(fmt.Sprintf("cards_over_%s", formatLine(line)),
			home.Cards.OverPercentage(line), away.Cards.OverPercentage(line))
	}
	return rows
}
