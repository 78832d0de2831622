package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// Origen del conteo de un partido.
const (
	sourceStatistics = "statistics"
	sourceEvents     = "events"
	sourceScore      = "score"
	sourceNone       = "none"
)

var (
	goalTotalLines = []float64{0.5, 1.5, 2.5, 3.5}
	goalTeamLines  = []float64{0.5, 1.5, 2.5}
	goalHalfLines  = []float64{0.5, 1.5}
)

// GoalAverages son medias por partido, redondeadas a 2 decimales.
type GoalAverages struct {
	Scored             float64 `json:"goals_scored"`
	Conceded           float64 `json:"goals_conceded"`
	Total              float64 `json:"goals_total"`
	FirstHalfScored    float64 `json:"first_half_scored"`
	FirstHalfConceded  float64 `json:"first_half_conceded"`
	SecondHalfScored   float64 `json:"second_half_scored"`
	SecondHalfConceded float64 `json:"second_half_conceded"`
}

// GoalMarkets son los porcentajes de mercado de goles.
type GoalMarkets struct {
	CleanSheets      int             `json:"clean_sheets"`
	FailedToScore    int             `json:"failed_to_score"`
	BTTS             int             `json:"btts"`
	Over             []LineFrequency `json:"over"`
	ScoredOver       []LineFrequency `json:"scored_over"`
	ConcededOver     []LineFrequency `json:"conceded_over"`
	FirstHalfOver    []LineFrequency `json:"first_half_over"`
	SecondHalfOver   []LineFrequency `json:"second_half_over"`
	CleanSheetCount  int             `json:"clean_sheet_count"`
	FailedToScoreCnt int             `json:"failed_to_score_count"`
	BTTSCount        int             `json:"btts_count"`
}

// FirstToScore resume los partidos en los que el equipo marcó el primer gol
// y cómo terminaron esos partidos.
type FirstToScore struct {
	Count      int         `json:"count"`
	Percentage int         `json:"percentage"`
	Conceded   int         `json:"conceded_first"`
	Outcomes   ResultSplit `json:"outcomes"`
}

// GoalMatch es el desglose de un partido del historial.
type GoalMatch struct {
	MatchID      int64     `json:"match_id"`
	Date         time.Time `json:"date"`
	Opponent     string    `json:"opponent"`
	Scored       int       `json:"scored"`
	Conceded     int       `json:"conceded"`
	Result       string    `json:"result"` // W | D | L
	HalfScored   int       `json:"half_time_scored"`
	HalfConceded int       `json:"half_time_conceded"`
	ScoredFirst  bool      `json:"scored_first"`
	Source       string    `json:"source"` // statistics | events | score | none
}

// GoalStats es la salida del GoalAnalyzer.
type GoalStats struct {
	TeamID       int64          `json:"team_id"`
	GamesCount   int            `json:"games_count"`
	Form         string         `json:"form"`
	Averages     GoalAverages   `json:"averages"`
	Results      ResultSplit    `json:"results"`
	Markets      GoalMarkets    `json:"markets"`
	FirstToScore FirstToScore   `json:"first_to_score"`
	Intervals    []IntervalStat `json:"intervals"`
	Matches      []GoalMatch    `json:"matches"`
}

// OverPercentage devuelve el % de partidos con más de line goles totales.
func (g GoalStats) OverPercentage(line float64) int {
	return findLine(g.Markets.Over, line).Percentage
}

// GoalAnalyzer calcula estadísticas de goles sobre un historial de contexto.
type GoalAnalyzer struct {
	vocab       *domain.Vocabulary
	buckets     *domain.IntervalBucketizer
	historySize int
}

// NewGoalAnalyzer crea el analizador.
func NewGoalAnalyzer(opts Options) *GoalAnalyzer {
	opts = opts.withDefaults()
	return &GoalAnalyzer{vocab: opts.Vocabulary, buckets: opts.Buckets, historySize: opts.HistorySize}
}

// scoringEvent es un gol con el equipo al que se le acredita.
type scoringEvent struct {
	event     domain.Event
	creditsTo int64
}

// goalAccumulator es el estado local de un Analyze. Vive solo durante la llamada.
type goalAccumulator struct {
	scored, conceded     int
	htScored, htConceded int
	shScored, shConceded int

	cleanSheets, failedToScore, btts int
	results                          resultCounter

	firstCount, firstConceded int
	firstOutcomes             resultCounter

	over, scoredOver, concededOver *overCounter
	firstHalfOver, secondHalfOver  *overCounter
	intervals                      *bucketTally

	form    strings.Builder
	matches []GoalMatch
}

// Analyze procesa el historial de teamID. El historial se ordena por fecha y se
// trunca a historySize; los partidos en los que teamID no participa se ignoran.
func (a *GoalAnalyzer) Analyze(history []domain.MatchRecord, teamID int64) GoalStats {
	history = NormalizeTeamHistory(history, teamID, a.historySize)
	games := len(history)

	acc := &goalAccumulator{
		over:           newOverCounter(goalTotalLines),
		scoredOver:     newOverCounter(goalTeamLines),
		concededOver:   newOverCounter(goalTeamLines),
		firstHalfOver:  newOverCounter(goalHalfLines),
		secondHalfOver: newOverCounter(goalHalfLines),
		intervals:      newIntervalTally(a.buckets),
	}

	for _, m := range history {
		a.processMatch(acc, m, teamID)
	}

	return GoalStats{
		TeamID:     teamID,
		GamesCount: games,
		Form:       acc.form.String(),
		Averages: GoalAverages{
			Scored:             domain.Average(float64(acc.scored), games),
			Conceded:           domain.Average(float64(acc.conceded), games),
			Total:              domain.Average(float64(acc.scored+acc.conceded), games),
			FirstHalfScored:    domain.Average(float64(acc.htScored), games),
			FirstHalfConceded:  domain.Average(float64(acc.htConceded), games),
			SecondHalfScored:   domain.Average(float64(acc.shScored), games),
			SecondHalfConceded: domain.Average(float64(acc.shConceded), games),
		},
		Results: acc.results.result(games),
		Markets: GoalMarkets{
			CleanSheets:      domain.Percentage(acc.cleanSheets, games),
			FailedToScore:    domain.Percentage(acc.failedToScore, games),
			BTTS:             domain.Percentage(acc.btts, games),
			Over:             acc.over.result(games),
			ScoredOver:       acc.scoredOver.result(games),
			ConcededOver:     acc.concededOver.result(games),
			FirstHalfOver:    acc.firstHalfOver.result(games),
			SecondHalfOver:   acc.secondHalfOver.result(games),
			CleanSheetCount:  acc.cleanSheets,
			FailedToScoreCnt: acc.failedToScore,
			BTTSCount:        acc.btts,
		},
		FirstToScore: FirstToScore{
			Count:      acc.firstCount,
			Percentage: domain.Percentage(acc.firstCount, games),
			Conceded:   acc.firstConceded,
			Outcomes:   acc.firstOutcomes.result(acc.firstCount),
		},
		Intervals: acc.intervals.result(games),
		Matches:   acc.matches,
	}
}

func (a *GoalAnalyzer) processMatch(acc *goalAccumulator, m domain.MatchRecord, teamID int64) {
	opp, _ := m.Opponent(teamID)
	events := a.scoringEvents(m, teamID, opp.TeamID)

	scored, conceded, source := a.matchGoals(m, teamID, opp.TeamID, events)
	acc.scored += scored
	acc.conceded += conceded
	acc.results.add(scored, conceded)
	acc.form.WriteString(resultLetter(scored, conceded))

	if conceded == 0 {
		acc.cleanSheets++
	}
	if scored == 0 {
		acc.failedToScore++
	}
	if scored > 0 && conceded > 0 {
		acc.btts++
	}
	acc.over.add(float64(scored + conceded))
	acc.scoredOver.add(float64(scored))
	acc.concededOver.add(float64(conceded))

	// Mitades y buckets salen siempre de los minutos de los eventos.
	var htFor, htAgainst, shFor, shAgainst int
	acc.intervals.startMatch()
	for _, se := range events {
		ev := se.event
		if !domain.ValidMinute(ev.Minute, ev.ExtraMinute) {
			continue
		}
		isFor := se.creditsTo == teamID
		if domain.IsFirstHalf(ev.Minute) {
			if isFor {
				htFor++
			} else {
				htAgainst++
			}
		} else {
			if isFor {
				shFor++
			} else {
				shAgainst++
			}
		}
		acc.intervals.add(ev.Minute, ev.ExtraMinute, isFor)
	}
	acc.intervals.endMatch()

	acc.htScored += htFor
	acc.htConceded += htAgainst
	acc.shScored += shFor
	acc.shConceded += shAgainst
	acc.firstHalfOver.add(float64(htFor + htAgainst))
	acc.secondHalfOver.add(float64(shFor + shAgainst))

	scoredFirst := false
	if first, ok := firstScorer(events); ok {
		if first == teamID {
			scoredFirst = true
			acc.firstCount++
			acc.firstOutcomes.add(scored, conceded)
		} else {
			acc.firstConceded++
		}
	}

	acc.matches = append(acc.matches, GoalMatch{
		MatchID:      m.ID,
		Date:         m.StartingAt,
		Opponent:     opp.Name,
		Scored:       scored,
		Conceded:     conceded,
		Result:       resultLetter(scored, conceded),
		HalfScored:   htFor,
		HalfConceded: htAgainst,
		ScoredFirst:  scoredFirst,
		Source:       source,
	})
}

// matchGoals obtiene goles a favor/en contra. Prioridad: estadística agregada
// "Goals"; si ambas son cero, conteo de eventos de gol; si tampoco hay eventos,
// el marcador final si el proveedor lo envió.
func (a *GoalAnalyzer) matchGoals(m domain.MatchRecord, teamID, oppID int64, events []scoringEvent) (scored, conceded int, source string) {
	sFor, _ := a.vocab.Stat(m, domain.StatGoals, teamID)
	sAgainst, _ := a.vocab.Stat(m, domain.StatGoals, oppID)
	if sFor > 0 || sAgainst > 0 {
		return int(sFor), int(sAgainst), sourceStatistics
	}

	for _, se := range events {
		if se.creditsTo == teamID {
			scored++
		} else {
			conceded++
		}
	}
	if scored > 0 || conceded > 0 {
		return scored, conceded, sourceEvents
	}

	if m.Scores.Current.Known {
		if p, ok := m.Participant(teamID); ok && p.Location == domain.LocationAway {
			return m.Scores.Current.Away, m.Scores.Current.Home, sourceScore
		}
		return m.Scores.Current.Home, m.Scores.Current.Away, sourceScore
	}
	return 0, 0, sourceNone
}

// scoringEvents devuelve los goles del partido acreditados a uno de los dos equipos.
// Un gol en propia puerta lleva el TeamID del equipo que lo encaja y se acredita al rival.
func (a *GoalAnalyzer) scoringEvents(m domain.MatchRecord, teamID, oppID int64) []scoringEvent {
	var out []scoringEvent
	for _, ev := range m.Events {
		kind := a.vocab.EventKind(ev.Type)
		if !kind.IsGoal() {
			continue
		}
		credit := ev.TeamID
		if kind == domain.KindOwnGoal {
			switch ev.TeamID {
			case teamID:
				credit = oppID
			case oppID:
				credit = teamID
			}
		}
		if credit != teamID && credit != oppID {
			continue
		}
		out = append(out, scoringEvent{event: ev, creditsTo: credit})
	}
	return out
}

// firstScorer devuelve el equipo que marcó el gol más temprano.
// Los goles con minuto malformado no participan en el orden.
func firstScorer(events []scoringEvent) (int64, bool) {
	valid := make([]scoringEvent, 0, len(events))
	for _, se := range events {
		if domain.ValidMinute(se.event.Minute, se.event.ExtraMinute) {
			valid = append(valid, se)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return domain.EventBefore(valid[i].event, valid[j].event)
	})
	return valid[0].creditsTo, true
}

func resultLetter(scored, conceded int) string {
	switch {
	case scored > conceded:
		return "W"
	case scored == conceded:
		return "D"
	default:
		return "L"
	}
}

// NormalizeTeamHistory aplica NormalizeHistory y descarta los partidos en los que
// teamID no es uno de los dos participantes.
func NormalizeTeamHistory(history []domain.MatchRecord, teamID int64, limit int) []domain.MatchRecord {
	filtered := make([]domain.MatchRecord, 0, len(history))
	for _, m := range history {
		if _, ok := m.Opponent(teamID); ok {
			filtered = append(filtered, m)
		}
	}
	return domain.NormalizeHistory(filtered, limit)
}
