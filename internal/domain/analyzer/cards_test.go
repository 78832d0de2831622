package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

func TestCardAnalyzer_NameDriftAndSplit(t *testing.T) {
	m := homeMatch(1, 1, teamB)
	m.Events = []domain.Event{
		ev("Yellowcard", 10, teamA),
		ev("Yellow Card", 40, teamB),
		ev("yellow_card", 50, teamB),
		ev("Redcard", 80, teamA),
		ev("Yellowredcard", 85, teamB),
		ev("Goal", 60, teamA),
	}

	got := NewCardAnalyzer(Options{}).Analyze([]domain.MatchRecord{m}, teamA)

	assert.Equal(t, 2.0, got.Averages.For)
	assert.Equal(t, 3.0, got.Averages.Against)
	assert.Equal(t, 5.0, got.Averages.Total)
	assert.Equal(t, 1.0, got.Averages.FirstHalfFor)
	assert.Equal(t, 1.0, got.Averages.FirstHalfAgainst)
	assert.Equal(t, 1.0, got.Averages.SecondHalfFor)
	assert.Equal(t, 2.0, got.Averages.SecondHalfAgainst)
	assert.Equal(t, 1.0, got.Averages.YellowFor)
	assert.Equal(t, 1.0, got.Averages.RedFor)
	assert.Equal(t, 2.0, got.Averages.YellowAgainst)
	assert.Equal(t, 1.0, got.Averages.RedAgainst)

	assert.Equal(t, 100, got.OverPercentage(4.5))
	assert.Equal(t, 100, findLine(got.TeamOver, 1.5).Percentage)
	assert.Equal(t, 0, findLine(got.TeamOver, 2.5).Percentage)
}

func TestCardAnalyzer_UnknownCardCountsInTotals(t *testing.T) {
	m := homeMatch(1, 1, teamB)
	m.Events = []domain.Event{ev("Green Card", 30, teamA)}

	got := NewCardAnalyzer(Options{}).Analyze([]domain.MatchRecord{m}, teamA)

	assert.Equal(t, 1.0, got.Averages.For)
	assert.Equal(t, 0.0, got.Averages.YellowFor)
	assert.Equal(t, 0.0, got.Averages.RedFor)
}

func TestCardAnalyzer_FallbackToStatistics(t *testing.T) {
	m := homeMatch(1, 1, teamB)
	m.Statistics = []domain.StatisticEntry{
		stat("Yellowcards", teamA, 2),
		stat("Redcards", teamA, 1),
		stat("Yellowcards", teamB, 4),
	}

	got := NewCardAnalyzer(Options{}).Analyze([]domain.MatchRecord{m}, teamA)

	assert.Equal(t, 3.0, got.Averages.For)
	assert.Equal(t, 4.0, got.Averages.Against)
	assert.Equal(t, 2.0, got.Averages.YellowFor)
	assert.Equal(t, 100, got.OverPercentage(4.5))
	// sin eventos no hay minutos: los buckets quedan vacíos
	for _, iv := range got.Intervals {
		assert.Equal(t, 0, iv.Total)
	}
}

func TestCardAnalyzer_IntervalsVolumeAndFrequency(t *testing.T) {
	m1 := homeMatch(1, 1, teamB)
	m1.Events = []domain.Event{ev("Yellowcard", 80, teamA), ev("Yellowcard", 89, teamA), {Type: "Yellowcard", Minute: 90, ExtraMinute: 3, TeamID: teamB}}
	m2 := homeMatch(2, 2, teamB)
	m2.Events = []domain.Event{ev("Yellowcard", 5, teamB)}

	got := NewCardAnalyzer(Options{}).Analyze([]domain.MatchRecord{m1, m2}, teamA)

	last, _ := findInterval(got.Intervals, "76-90")
	assert.Equal(t, 2, last.For)
	assert.Equal(t, 1, last.Against)
	assert.Equal(t, 1, last.Matches)
	assert.Equal(t, 50, last.Frequency)

	first, _ := findInterval(got.Intervals, "0-15")
	assert.Equal(t, 1, first.AgainstMatches)
	assert.Equal(t, 50, first.AgainstPercentage)
}

func TestCardAnalyzer_EmptyHistory(t *testing.T) {
	got := NewCardAnalyzer(Options{}).Analyze(nil, teamA)

	assert.Equal(t, 0, got.GamesCount)
	assert.Equal(t, CardAverages{}, got.Averages)
	for _, l := range got.Over {
		assert.Equal(t, 0, l.Percentage)
	}
}

func TestGeneralStatsAnalyzer_Averages(t *testing.T) {
	m1 := homeMatch(1, 1, teamB)
	m1.Statistics = []domain.StatisticEntry{
		{TypeID: 42, TeamID: teamA, Value: 14},
		{TypeID: 42, TeamID: teamB, Value: 8},
		stat("Ball Possession %", teamA, 60),
		stat("Ball Possession %", teamB, 40),
		stat("Fouls", teamA, 11),
	}
	m2 := homeMatch(2, 2, teamB)
	m2.Statistics = []domain.StatisticEntry{
		stat("Shots Total", teamA, 10),
		stat("Shots Total", teamB, 12),
		stat("Ball Possession", teamA, 45),
		stat("Ball Possession", teamB, 55),
	}

	got := NewGeneralStatsAnalyzer(Options{}).Analyze([]domain.MatchRecord{m1, m2}, teamA)

	shots := got.Average(domain.StatShotsTotal)
	assert.Equal(t, 12.0, shots.For)
	assert.Equal(t, 10.0, shots.Against)
	assert.Equal(t, 2, shots.Matches)

	poss := got.Average(domain.StatPossession)
	assert.Equal(t, 52.5, poss.For)
	assert.Equal(t, 47.5, poss.Against)

	fouls := got.Average(domain.StatFouls)
	assert.Equal(t, 5.5, fouls.For)
	assert.Equal(t, 1, fouls.Matches)

	assert.Len(t, got.Averages, len(generalKinds))
}

func TestGeneralStatsAnalyzer_EmptyHistory(t *testing.T) {
	got := NewGeneralStatsAnalyzer(Options{}).Analyze(nil, teamA)

	for _, s := range got.Averages {
		assert.Equal(t, 0.0, s.For, s.Stat)
		assert.Equal(t, 0.0, s.Against, s.Stat)
	}
}
