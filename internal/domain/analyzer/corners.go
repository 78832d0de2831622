package analyzer

import (
	"fmt"
	"sort"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

var (
	cornerTotalLines    = []float64{8.5, 9.5, 10.5}
	cornerTeamLines     = []float64{3.5, 4.5, 5.5}
	cornerHandicapLines = []float64{-1.5, -0.5, 0.5, 1.5}
)

// CornerAverages son medias por partido.
type CornerAverages struct {
	For               float64 `json:"for"`
	Against           float64 `json:"against"`
	Total             float64 `json:"total"`
	FirstHalfFor      float64 `json:"first_half_for"`
	FirstHalfAgainst  float64 `json:"first_half_against"`
	SecondHalfFor     float64 `json:"second_half_for"`
	SecondHalfAgainst float64 `json:"second_half_against"`
}

// RaceResult resume un objetivo de race-to-N.
// Won cuenta partidos en los que el equipo llegó primero a Target córners.
type RaceResult struct {
	Target     int    `json:"target"`
	Label      string `json:"label"`
	Won        int    `json:"won"`
	Lost       int    `json:"lost"`
	Percentage int    `json:"percentage"`
}

// CornerStats es la salida del CornerAnalyzer.
type CornerStats struct {
	TeamID              int64           `json:"team_id"`
	GamesCount          int             `json:"games_count"`
	Averages            CornerAverages  `json:"averages"`
	MostCorners         ResultSplit     `json:"most_corners"`
	Over                []LineFrequency `json:"over"`
	TeamOver            []LineFrequency `json:"team_over"`
	Handicaps           []LineFrequency `json:"handicaps"`
	Races               []RaceResult    `json:"races"`
	Intervals           []IntervalStat  `json:"intervals"`
	LateWindows         []IntervalStat  `json:"late_windows"`
	DerivedCorners      int             `json:"derived_corners"`
	UnattributedCorners int             `json:"unattributed_corners"`
}

// OverPercentage devuelve el % de partidos con más de line córners totales.
func (c CornerStats) OverPercentage(line float64) int {
	return findLine(c.Over, line).Percentage
}

// Race devuelve el resultado para el objetivo dado.
func (c CornerStats) Race(target int) (RaceResult, bool) {
	for _, r := range c.Races {
		if r.Target == target {
			return r, true
		}
	}
	return RaceResult{}, false
}

// CornerAnalyzer calcula estadísticas de córners sobre un historial de contexto.
type CornerAnalyzer struct {
	vocab       *domain.Vocabulary
	buckets     *domain.IntervalBucketizer
	historySize int
	raceTargets []int
}

// NewCornerAnalyzer crea el analizador.
func NewCornerAnalyzer(opts Options) *CornerAnalyzer {
	opts = opts.withDefaults()
	targets := append([]int(nil), opts.RaceTargets...)
	sort.Ints(targets)
	return &CornerAnalyzer{
		vocab:       opts.Vocabulary,
		buckets:     opts.Buckets,
		historySize: opts.HistorySize,
		raceTargets: targets,
	}
}

type cornerAccumulator struct {
	sumFor, sumAgainst     int
	sumTotal               int
	htFor, htAgainst       int
	shFor, shAgainst       int
	most                   resultCounter
	over, teamOver         *overCounter
	handicapCovered        []int
	raceWon, raceLost      []int
	intervals, lateWindows *bucketTally
	derived, unattributed  int
}

// Analyze procesa el historial de teamID.
func (a *CornerAnalyzer) Analyze(history []domain.MatchRecord, teamID int64) CornerStats {
	history = NormalizeTeamHistory(history, teamID, a.historySize)
	games := len(history)

	acc := &cornerAccumulator{
		over:            newOverCounter(cornerTotalLines),
		teamOver:        newOverCounter(cornerTeamLines),
		handicapCovered: make([]int, len(cornerHandicapLines)),
		raceWon:         make([]int, len(a.raceTargets)),
		raceLost:        make([]int, len(a.raceTargets)),
		intervals:       newIntervalTally(a.buckets),
		lateWindows:     newWindowTally(domain.LateFirstHalfWindow, domain.LateMatchWindow),
	}

	for _, m := range history {
		a.processMatch(acc, m, teamID)
	}

	handicaps := make([]LineFrequency, len(cornerHandicapLines))
	for i, line := range cornerHandicapLines {
		handicaps[i] = LineFrequency{
			Line:       line,
			Count:      acc.handicapCovered[i],
			Percentage: domain.Percentage(acc.handicapCovered[i], games),
		}
	}

	races := make([]RaceResult, len(a.raceTargets))
	for i, target := range a.raceTargets {
		races[i] = RaceResult{
			Target:     target,
			Label:      fmt.Sprintf("race_to_%d", target),
			Won:        acc.raceWon[i],
			Lost:       acc.raceLost[i],
			Percentage: domain.Percentage(acc.raceWon[i], games),
		}
	}

	return CornerStats{
		TeamID:     teamID,
		GamesCount: games,
		Averages: CornerAverages{
			For:               domain.Average(float64(acc.sumFor), games),
			Against:           domain.Average(float64(acc.sumAgainst), games),
			Total:             domain.Average(float64(acc.sumTotal), games),
			FirstHalfFor:      domain.Average(float64(acc.htFor), games),
			FirstHalfAgainst:  domain.Average(float64(acc.htAgainst), games),
			SecondHalfFor:     domain.Average(float64(acc.shFor), games),
			SecondHalfAgainst: domain.Average(float64(acc.shAgainst), games),
		},
		MostCorners:         acc.most.result(games),
		Over:                acc.over.result(games),
		TeamOver:            acc.teamOver.result(games),
		Handicaps:           handicaps,
		Races:               races,
		Intervals:           acc.intervals.result(games),
		LateWindows:         acc.lateWindows.result(games),
		DerivedCorners:      acc.derived,
		UnattributedCorners: acc.unattributed,
	}
}

func (a *CornerAnalyzer) processMatch(acc *cornerAccumulator, m domain.MatchRecord, teamID int64) {
	opp, _ := m.Opponent(teamID)
	events := a.cornerEvents(m)

	var evFor, evAgainst int
	for _, ev := range events {
		switch ev.TeamID {
		case teamID:
			evFor++
		case opp.TeamID:
			evAgainst++
		default:
			if ev.Derived {
				acc.unattributed++
			}
		}
		if ev.Derived {
			acc.derived++
		}
	}

	// Totales: estadística agregada si existe; si no, eventos. Los córners sin
	// equipo no cuentan a favor ni en contra pero sí en el total del partido.
	sFor, _ := a.vocab.Stat(m, domain.StatCorners, teamID)
	sAgainst, _ := a.vocab.Stat(m, domain.StatCorners, opp.TeamID)
	cornersFor, cornersAgainst := int(sFor), int(sAgainst)
	total := cornersFor + cornersAgainst
	if total == 0 {
		cornersFor, cornersAgainst = evFor, evAgainst
		total = len(events)
	}

	acc.sumFor += cornersFor
	acc.sumAgainst += cornersAgainst
	acc.sumTotal += total
	acc.most.add(cornersFor, cornersAgainst)
	acc.over.add(float64(total))
	acc.teamOver.add(float64(cornersFor))
	for i, line := range cornerHandicapLines {
		if float64(cornersFor)+line > float64(cornersAgainst) {
			acc.handicapCovered[i]++
		}
	}

	// Timeline: solo eventos atribuidos y con minuto válido.
	timeline := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if ev.TeamID != teamID && ev.TeamID != opp.TeamID {
			continue
		}
		if !domain.ValidMinute(ev.Minute, ev.ExtraMinute) {
			continue
		}
		timeline = append(timeline, ev)
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return domain.EventBefore(timeline[i], timeline[j])
	})

	acc.intervals.startMatch()
	acc.lateWindows.startMatch()
	for _, ev := range timeline {
		isFor := ev.TeamID == teamID
		acc.intervals.add(ev.Minute, ev.ExtraMinute, isFor)
		acc.lateWindows.add(ev.Minute, ev.ExtraMinute, isFor)
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
	acc.lateWindows.endMatch()

	a.runRaces(acc, timeline, teamID)
}

// runRaces recorre el timeline ordenado con un contador por equipo. Para cada
// objetivo, el primer equipo que lo alcanza gana la carrera del partido; un
// objetivo resuelto no vuelve a dispararse.
func (a *CornerAnalyzer) runRaces(acc *cornerAccumulator, timeline []domain.Event, teamID int64) {
	counts := make(map[int64]int, 2)
	resolved := make([]bool, len(a.raceTargets))
	for _, ev := range timeline {
		counts[ev.TeamID]++
		n := counts[ev.TeamID]
		for i, target := range a.raceTargets {
			if resolved[i] || n != target {
				continue
			}
			resolved[i] = true
			if ev.TeamID == teamID {
				acc.raceWon[i]++
			} else {
				acc.raceLost[i]++
			}
		}
	}
}

// cornerEvents devuelve los córners del feed. Si el partido no trae ninguno y
// tiene comentarios, los deduce del texto.
func (a *CornerAnalyzer) cornerEvents(m domain.MatchRecord) []domain.Event {
	var out []domain.Event
	for _, ev := range m.Events {
		if a.vocab.EventKind(ev.Type) == domain.KindCorner {
			out = append(out, ev)
		}
	}
	if len(out) == 0 && len(m.Comments) > 0 {
		return CornersFromCommentary(m)
	}
	return out
}
