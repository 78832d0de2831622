package analyzer

import (
	"strconv"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// Líneas de córners que evalúa la calculadora.
var calculatorCornerLines = []float64{8.5, 9.5, 10.5, 11.5}

const goalsCalculatorLine = 2.5

// GoalsCalculator es el sub-resultado de value bets de goles.
type GoalsCalculator struct {
	Expected ExpectedGoals            `json:"expected_goals"`
	Over25   domain.MarketProbability `json:"over_2_5"`
	BTTS     domain.MarketProbability `json:"btts"`
}

// Markets devuelve los mercados evaluados en orden fijo.
func (g GoalsCalculator) Markets() []domain.MarketProbability {
	return []domain.MarketProbability{g.Over25, g.BTTS}
}

// CalculateGoals aplica las heurísticas de Over 2.5 y BTTS y las compara con
// las cuotas. Sin cuota el mercado se devuelve con odd=nil y value=false.
func CalculateGoals(exp ExpectedGoals, odds []domain.MarketOdd, minEdge float64) GoalsCalculator {
	if minEdge <= 0 {
		minEdge = domain.DefaultValueEdge
	}
	overProb := domain.Clamp(5, 95, exp.Total/goalsCalculatorLine*50)
	bttsProb := domain.Clamp(10, 90, min(exp.Home, exp.Away)*60)
	return GoalsCalculator{
		Expected: exp,
		Over25: domain.PriceMarket(domain.MarketGoalsOverUnder, domain.LabelOver,
			formatLine(goalsCalculatorLine), overProb, odds, minEdge),
		BTTS: domain.PriceMarket(domain.MarketBothTeamsToScore, domain.LabelYes,
			"", bttsProb, odds, minEdge),
	}
}

// ExpectedCorners son los córners esperados de cada lado.
type ExpectedCorners struct {
	Home  float64 `json:"home"`
	Away  float64 `json:"away"`
	Total float64 `json:"total"`
}

// NewExpectedCorners combina córners a favor de cada equipo con los concedidos por el rival.
func NewExpectedCorners(home, away CornerStats) ExpectedCorners {
	h := domain.Mean2(home.Averages.For, away.Averages.Against)
	a := domain.Mean2(away.Averages.For, home.Averages.Against)
	return ExpectedCorners{Home: h, Away: a, Total: domain.Round2(h + a)}
}

// CornersCalculator es el sub-resultado de value bets de córners.
type CornersCalculator struct {
	Expected ExpectedCorners            `json:"expected_corners"`
	Lines    []domain.MarketProbability `json:"lines"`
}

// CalculateCorners evalúa cada línea con clamp(5, 95, 50 + 15×(total esperado − línea)).
func CalculateCorners(exp ExpectedCorners, odds []domain.MarketOdd, minEdge float64) CornersCalculator {
	if minEdge <= 0 {
		minEdge = domain.DefaultValueEdge
	}
	out := CornersCalculator{
		Expected: exp,
		Lines:    make([]domain.MarketProbability, len(calculatorCornerLines)),
	}
	for i, line := range calculatorCornerLines {
		prob := domain.Clamp(5, 95, 50+15*(exp.Total-line))
		out.Lines[i] = domain.PriceMarket(domain.MarketCornersOverUnder, domain.LabelOver,
			formatLine(line), prob, odds, minEdge)
	}
	return out
}

// Calculator agrupa ambas calculadoras.
type Calculator struct {
	Goals   GoalsCalculator   `json:"goals"`
	Corners CornersCalculator `json:"corners"`
}

// Markets devuelve todos los mercados evaluados.
func (c Calculator) Markets() []domain.MarketProbability {
	return append(c.Goals.Markets(), c.Corners.Lines...)
}

// ValueBets devuelve solo los mercados marcados como value.
func (c Calculator) ValueBets() []domain.MarketProbability {
	var out []domain.MarketProbability
	for _, m := range c.Markets() {
		if m.Value {
			out = append(out, m)
		}
	}
	return out
}

// formatLine imprime la línea como la envía el proveedor ("2.5").
func formatLine(line float64) string {
	return strconv.FormatFloat(line, 'f', -1, 64)
}
