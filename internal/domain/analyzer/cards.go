package analyzer

import (
	"github.com/alejandrodnm/matchlens/internal/domain"
)

var cardTotalLines = []float64{0.5, 1.5, 2.5, 3.5, 4.5}

// CardAverages son medias de tarjetas por partido.
type CardAverages struct {
	For               float64 `json:"for"`
	Against           float64 `json:"against"`
	Total             float64 `json:"total"`
	FirstHalfFor      float64 `json:"first_half_for"`
	FirstHalfAgainst  float64 `json:"first_half_against"`
	SecondHalfFor     float64 `json:"second_half_for"`
	SecondHalfAgainst float64 `json:"second_half_against"`
	YellowFor         float64 `json:"yellow_for"`
	YellowAgainst     float64 `json:"yellow_against"`
	RedFor            float64 `json:"red_for"`
	RedAgainst        float64 `json:"red_against"`
}

// CardStats es la salida del CardAnalyzer. No hay race-to-N para tarjetas.
type CardStats struct {
	TeamID     int64           `json:"team_id"`
	GamesCount int             `json:"games_count"`
	Averages   CardAverages    `json:"averages"`
	Over       []LineFrequency `json:"over"`
	TeamOver   []LineFrequency `json:"team_over"`
	Intervals  []IntervalStat  `json:"intervals"`
}

// OverPercentage devuelve el % de partidos con más de line tarjetas totales.
func (c CardStats) OverPercentage(line float64) int {
	return findLine(c.Over, line).Percentage
}

// CardAnalyzer calcula estadísticas de tarjetas.
type CardAnalyzer struct {
	vocab       *domain.Vocabulary
	buckets     *domain.IntervalBucketizer
	historySize int
}

// NewCardAnalyzer crea el analizador.
func NewCardAnalyzer(opts Options) *CardAnalyzer {
	opts = opts.withDefaults()
	return &CardAnalyzer{vocab: opts.Vocabulary, buckets: opts.Buckets, historySize: opts.HistorySize}
}

type cardAccumulator struct {
	sumFor, sumAgainst       int
	htFor, htAgainst         int
	shFor, shAgainst         int
	yellowFor, yellowAgainst int
	redFor, redAgainst       int
	over, teamOver           *overCounter
	intervals                *bucketTally
}

// Analyze procesa el historial de teamID.
func (a *CardAnalyzer) Analyze(history []domain.MatchRecord, teamID int64) CardStats {
	history = NormalizeTeamHistory(history, teamID, a.historySize)
	games := len(history)

	acc := &cardAccumulator{
		over:      newOverCounter(cardTotalLines),
		teamOver:  newOverCounter(cardTotalLines),
		intervals: newIntervalTally(a.buckets),
	}
	for _, m := range history {
		a.processMatch(acc, m, teamID)
	}

	avg := func(n int) float64 { return domain.Average(float64(n), games) }
	return CardStats{
		TeamID:     teamID,
		GamesCount: games,
		Averages: CardAverages{
			For:               avg(acc.sumFor),
			Against:           avg(acc.sumAgainst),
			Total:             avg(acc.sumFor + acc.sumAgainst),
			FirstHalfFor:      avg(acc.htFor),
			FirstHalfAgainst:  avg(acc.htAgainst),
			SecondHalfFor:     avg(acc.shFor),
			SecondHalfAgainst: avg(acc.shAgainst),
			YellowFor:         avg(acc.yellowFor),
			YellowAgainst:     avg(acc.yellowAgainst),
			RedFor:            avg(acc.redFor),
			RedAgainst:        avg(acc.redAgainst),
		},
		Over:      acc.over.result(games),
		TeamOver:  acc.teamOver.result(games),
		Intervals: acc.intervals.result(games),
	}
}

func (a *CardAnalyzer) processMatch(acc *cardAccumulator, m domain.MatchRecord, teamID int64) {
	opp, _ := m.Opponent(teamID)

	var cardsFor, cardsAgainst, events int
	acc.intervals.startMatch()
	for _, ev := range m.Events {
		kind := a.vocab.EventKind(ev.Type)
		if !kind.IsCard() {
			continue
		}
		var isFor bool
		switch ev.TeamID {
		case teamID:
			isFor = true
		case opp.TeamID:
		default:
			continue
		}
		events++
		if isFor {
			cardsFor++
		} else {
			cardsAgainst++
		}
		a.countColour(acc, kind, isFor)

		if !domain.ValidMinute(ev.Minute, ev.ExtraMinute) {
			continue
		}
		acc.intervals.add(ev.Minute, ev.ExtraMinute, isFor)
		switch {
		case domain.IsFirstHalf(ev.Minute) && isFor:
			acc.htFor++
		case domain.IsFirstHalf(ev.Minute):
			acc.htAgainst++
		case isFor:
			acc.shFor++
		default:
			acc.shAgainst++
		}
	}
	acc.intervals.endMatch()

	// Sin eventos de tarjeta, se usan los agregados Yellowcards + Redcards.
	if events == 0 {
		yFor, _ := a.vocab.Stat(m, domain.StatYellowCards, teamID)
		rFor, _ := a.vocab.Stat(m, domain.StatRedCards, teamID)
		yAgainst, _ := a.vocab.Stat(m, domain.StatYellowCards, opp.TeamID)
		rAgainst, _ := a.vocab.Stat(m, domain.StatRedCards, opp.TeamID)
		cardsFor = int(yFor + rFor)
		cardsAgainst = int(yAgainst + rAgainst)
		acc.yellowFor += int(yFor)
		acc.redFor += int(rFor)
		acc.yellowAgainst += int(yAgainst)
		acc.redAgainst += int(rAgainst)
	}

	acc.sumFor += cardsFor
	acc.sumAgainst += cardsAgainst
	acc.over.add(float64(cardsFor + cardsAgainst))
	acc.teamOver.add(float64(cardsFor))
}

// countColour separa amarillas y rojas. Una segunda amarilla cuenta como roja;
// una tarjeta de tipo desconocido no suma a ninguno de los dos.
func (a *CardAnalyzer) countColour(acc *cardAccumulator, kind domain.EventKind, isFor bool) {
	switch kind {
	case domain.KindYellowCard:
		if isFor {
			acc.yellowFor++
		} else {
			acc.yellowAgainst++
		}
	case domain.KindRedCard, domain.KindYellowRedCard:
		if isFor {
			acc.redFor++
		} else {
			acc.redAgainst++
		}
	}
}
