package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// scoreCandidates es el conjunto fijo de marcadores evaluados, en orden de desempate.
var scoreCandidates = [][2]int{
	{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {0, 2}, {2, 1}, {1, 2}, {2, 2}, {3, 0},
	{0, 3}, {3, 1}, {1, 3}, {3, 2}, {2, 3}, {3, 3}, {4, 0}, {0, 4}, {4, 1}, {1, 4},
}

const (
	probableScores = 3
	possibleScores = 3
)

// ExpectedGoals son los goles esperados de cada lado.
type ExpectedGoals struct {
	Home  float64 `json:"home"`
	Away  float64 `json:"away"`
	Total float64 `json:"total"`
}

// NewExpectedGoals combina el ritmo goleador de cada equipo con el ritmo
// encajado por el rival: exp = media(propio marcado, rival encajado).
func NewExpectedGoals(home, away GoalStats) ExpectedGoals {
	h := domain.Mean2(home.Averages.Scored, away.Averages.Conceded)
	a := domain.Mean2(away.Averages.Scored, home.Averages.Conceded)
	return ExpectedGoals{Home: h, Away: a, Total: domain.Round2(h + a)}
}

// ScoreCandidate es un marcador con su puntuación heurística.
type ScoreCandidate struct {
	Label  string  `json:"score"`
	Home   int     `json:"home"`
	Away   int     `json:"away"`
	Points float64 `json:"points"`
}

// ScorePrediction es el sub-resultado de predicción de marcador.
type ScorePrediction struct {
	Expected ExpectedGoals    `json:"expected_goals"`
	Probable []ScoreCandidate `json:"probable"`
	Possible []ScoreCandidate `json:"possible"`
}

// PredictScore puntúa cada candidato con max(0, 30 − 10×distancia) y devuelve
// los tres mejores como probables y los tres siguientes como posibles.
// El orden es estable: a igual puntuación se respeta el orden de scoreCandidates.
func PredictScore(exp ExpectedGoals) ScorePrediction {
	ranked := make([]ScoreCandidate, len(scoreCandidates))
	for i, c := range scoreCandidates {
		dist := math.Abs(float64(c[0])-exp.Home) + math.Abs(float64(c[1])-exp.Away)
		ranked[i] = ScoreCandidate{
			Label:  fmt.Sprintf("%d-%d", c[0], c[1]),
			Home:   c[0],
			Away:   c[1],
			Points: domain.Round2(math.Max(0, 30-10*dist)),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})
	return ScorePrediction{
		Expected: exp,
		Probable: ranked[:probableScores],
		Possible: ranked[probableScores : probableScores+possibleScores],
	}
}
