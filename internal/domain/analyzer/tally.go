package analyzer

import (
	"github.com/alejandrodnm/matchlens/internal/domain"
)

// LineFrequency es la frecuencia con la que un conteo supera una línea (> line, no >=).
type LineFrequency struct {
	Line       float64 `json:"line"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
}

// ResultSplit cuenta victorias, empates y derrotas.
type ResultSplit struct {
	Wins        int `json:"wins"`
	Draws       int `json:"draws"`
	Losses      int `json:"losses"`
	WinPercent  int `json:"win_percentage"`
	DrawPercent int `json:"draw_percentage"`
	LossPercent int `json:"loss_percentage"`
}

// IntervalStat es el resumen de un bucket de minutos.
// For/Against/Total son volumen (suma de eventos). *Matches cuenta partidos con
// al menos un evento en el bucket; los porcentajes se calculan sobre los partidos.
type IntervalStat struct {
	Label             string `json:"label"`
	For               int    `json:"for"`
	Against           int    `json:"against"`
	Total             int    `json:"total"`
	ForMatches        int    `json:"for_matches"`
	AgainstMatches    int    `json:"against_matches"`
	Matches           int    `json:"matches"`
	ForPercentage     int    `json:"for_percentage"`
	AgainstPercentage int    `json:"against_percentage"`
	Frequency         int    `json:"frequency"`
}

// findLine devuelve la frecuencia para la línea dada.
func findLine(lines []LineFrequency, line float64) LineFrequency {
	for _, l := range lines {
		if l.Line == line {
			return l
		}
	}
	return LineFrequency{Line: line}
}

// overCounter acumula cuántos partidos superan cada línea.
type overCounter struct {
	lines  []float64
	counts []int
}

func newOverCounter(lines []float64) *overCounter {
	return &overCounter{lines: lines, counts: make([]int, len(lines))}
}

func (c *overCounter) add(value float64) {
	for i, line := range c.lines {
		if value > line {
			c.counts[i]++
		}
	}
}

func (c *overCounter) result(games int) []LineFrequency {
	out := make([]LineFrequency, len(c.lines))
	for i, line := range c.lines {
		out[i] = LineFrequency{
			Line:       line,
			Count:      c.counts[i],
			Percentage: domain.Percentage(c.counts[i], games),
		}
	}
	return out
}

// resultCounter cuenta W/D/L.
type resultCounter struct {
	wins, draws, losses int
}

func (c *resultCounter) add(goalsFor, goalsAgainst int) {
	switch {
	case goalsFor > goalsAgainst:
		c.wins++
	case goalsFor == goalsAgainst:
		c.draws++
	default:
		c.losses++
	}
}

func (c *resultCounter) result(games int) ResultSplit {
	return ResultSplit{
		Wins:        c.wins,
		Draws:       c.draws,
		Losses:      c.losses,
		WinPercent:  domain.Percentage(c.wins, games),
		DrawPercent: domain.Percentage(c.draws, games),
		LossPercent: domain.Percentage(c.losses, games),
	}
}

// bucketTally es el acumulador local de buckets para un processHistory.
// Se crea nuevo en cada llamada y nunca se comparte entre invocaciones.
type bucketTally struct {
	labels   []string
	classify func(minute, extra int, visit func(i int))

	forVol, againstVol                  []int
	forMatches, againstMatches, matches []int

	// flags del partido en curso
	seenFor, seenAgainst []bool
}

func newBucketTally(labels []string, classify func(minute, extra int, visit func(i int))) *bucketTally {
	n := len(labels)
	return &bucketTally{
		labels:         labels,
		classify:       classify,
		forVol:         make([]int, n),
		againstVol:     make([]int, n),
		forMatches:     make([]int, n),
		againstMatches: make([]int, n),
		matches:        make([]int, n),
		seenFor:        make([]bool, n),
		seenAgainst:    make([]bool, n),
	}
}

// newIntervalTally usa los seis buckets fijos: cada minuto cae en uno como máximo.
func newIntervalTally(b *domain.IntervalBucketizer) *bucketTally {
	return newBucketTally(b.Labels(), func(minute, extra int, visit func(int)) {
		if i, ok := b.Index(minute, extra); ok {
			visit(i)
		}
	})
}

// newWindowTally usa ventanas sintéticas que pueden solaparse con los buckets.
func newWindowTally(windows ...domain.IntervalBucket) *bucketTally {
	labels := make([]string, len(windows))
	for i, w := range windows {
		labels[i] = w.Label
	}
	return newBucketTally(labels, func(minute, extra int, visit func(int)) {
		for i, w := range windows {
			if w.Contains(minute, extra) {
				visit(i)
			}
		}
	})
}

// startMatch resetea los flags por partido.
func (t *bucketTally) startMatch() {
	for i := range t.seenFor {
		t.seenFor[i] = false
		t.seenAgainst[i] = false
	}
}

// add registra un evento. Un minuto malformado se ignora sin abortar el partido.
func (t *bucketTally) add(minute, extra int, isFor bool) {
	t.classify(minute, extra, func(i int) {
		if isFor {
			t.forVol[i]++
			t.seenFor[i] = true
		} else {
			t.againstVol[i]++
			t.seenAgainst[i] = true
		}
	})
}

// endMatch consolida los flags del partido en los contadores de frecuencia.
func (t *bucketTally) endMatch() {
	for i := range t.seenFor {
		if t.seenFor[i] {
			t.forMatches[i]++
		}
		if t.seenAgainst[i] {
			t.againstMatches[i]++
		}
		if t.seenFor[i] || t.seenAgainst[i] {
			t.matches[i]++
		}
	}
}

func (t *bucketTally) result(games int) []IntervalStat {
	out := make([]IntervalStat, len(t.labels))
	for i, label := range t.labels {
		out[i] = IntervalStat{
			Label:             label,
			For:               t.forVol[i],
			Against:           t.againstVol[i],
			Total:             t.forVol[i] + t.againstVol[i],
			ForMatches:        t.forMatches[i],
			AgainstMatches:    t.againstMatches[i],
			Matches:           t.matches[i],
			ForPercentage:     domain.Percentage(t.forMatches[i], games),
			AgainstPercentage: domain.Percentage(t.againstMatches[i], games),
			Frequency:         domain.Percentage(t.matches[i], games),
		}
	}
	return out
}

// findInterval devuelve el IntervalStat con la etiqueta dada.
func findInterval(stats []IntervalStat, label string) (IntervalStat, bool) {
	for _, s := range stats {
		if s.Label == label {
			return s, true
		}
	}
	return IntervalStat{}, false
}
