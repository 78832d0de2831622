package domain

import "strings"

// DefaultValueEdge es el edge mínimo (en puntos porcentuales) para marcar value.
const DefaultValueEdge = 5.0

// Mercados del proveedor de cuotas usados por las calculadoras.
const (
	MarketGoalsOverUnder   = "Goals Over/Under"
	MarketCornersOverUnder = "Corners Over/Under"
	MarketBothTeamsToScore = "Both Teams To Score"

	LabelOver = "Over"
	LabelYes  = "Yes"
)

// MarketOdd es una cuota decimal de la casa de apuestas para un mercado/línea.
type MarketOdd struct {
	FixtureID  int64   `json:"fixture_id,omitempty"`
	MarketName string  `json:"market_name"`
	Label      string  `json:"label"`
	Line       string  `json:"line,omitempty"`
	Price      float64 `json:"price"`
}

// FindOdd busca la cuota de un mercado/selección/línea.
// La comparación ignora mayúsculas y espacios en los extremos. Una cuota <= 1.0
// no es una cuota decimal válida y se trata como ausente.
func FindOdd(odds []MarketOdd, market, label, line string) (float64, bool) {
	for _, o := range odds {
		if !strings.EqualFold(strings.TrimSpace(o.MarketName), market) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(o.Label), label) {
			continue
		}
		if line != "" && strings.TrimSpace(o.Line) != line {
			continue
		}
		if o.Price <= 1.0 {
			continue
		}
		return o.Price, true
	}
	return 0, false
}

// ImpliedProbability convierte una cuota decimal en probabilidad implícita (0-100).
// Devuelve 0 si la cuota no es válida.
func ImpliedProbability(odd float64) float64 {
	if odd <= 0 {
		return 0
	}
	return Round2(100 / odd)
}

// MarketProbability es una probabilidad calculada comparada contra la cuota.
// Odd, ImpliedProbability y Edge son nil cuando no hay cuota para el mercado.
type MarketProbability struct {
	Market             string   `json:"market"`
	Label              string   `json:"label"`
	Line               string   `json:"line,omitempty"`
	Probability        float64  `json:"probability"`
	Odd                *float64 `json:"odd"`
	ImpliedProbability *float64 `json:"implied_probability"`
	Edge               *float64 `json:"edge"`
	Value              bool     `json:"value"`
}

// PriceMarket construye un MarketProbability. Con cuota, edge = probability - implied
// y value = edge > minEdge. Sin cuota, el mercado se devuelve sin precio y value=false.
func PriceMarket(market, label, line string, probability float64, odds []MarketOdd, minEdge float64) MarketProbability {
	mp := MarketProbability{
		Market:      market,
		Label:       label,
		Line:        line,
		Probability: Round2(Clamp(0, 100, probability)),
	}
	odd, ok := FindOdd(odds, market, label, line)
	if !ok {
		return mp
	}
	implied := ImpliedProbability(odd)
	edge := Round2(mp.Probability - implied)
	mp.Odd = &odd
	mp.ImpliedProbability = &implied
	mp.Edge = &edge
	mp.Value = edge > minEdge
	return mp
}
