package analyzer

import (
	"time"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

const (
	teamA int64 = 10
	teamB int64 = 20
	teamC int64 = 30
)

var baseDate = time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

// homeMatch construye un partido de teamA en casa contra opp, daysAgo días antes de baseDate.
func homeMatch(id int64, daysAgo int, opp int64) domain.MatchRecord {
	return domain.MatchRecord{
		ID:            id,
		StartingAt:    baseDate.AddDate(0, 0, -daysAgo),
		State:         domain.StateFinished,
		CurrentMinute: 90,
		Participants: []domain.Participant{
			{TeamID: teamA, Name: "Arsenal", Location: domain.LocationHome},
			{TeamID: opp, Name: teamName(opp), Location: domain.LocationAway},
		},
	}
}

func teamName(id int64) string {
	switch id {
	case teamA:
		return "Arsenal"
	case teamB:
		return "Chelsea"
	case teamC:
		return "Everton"
	}
	return "Unknown"
}

func ev(typ string, minute int, team int64) domain.Event {
	return domain.Event{Type: typ, Minute: minute, TeamID: team}
}

func stat(name string, team int64, value float64) domain.StatisticEntry {
	return domain.StatisticEntry{TypeName: name, TeamID: team, Value: value}
}

// goalsMatch añade goles como estadística agregada y como eventos repartidos por minuto.
func goalsMatch(id int64, daysAgo int, scored, conceded int) domain.MatchRecord {
	m := homeMatch(id, daysAgo, teamB)
	m.Statistics = []domain.StatisticEntry{
		stat("Goals", teamA, float64(scored)),
		stat("Goals", teamB, float64(conceded)),
	}
	for i := 0; i < scored; i++ {
		m.Events = append(m.Events, ev("Goal", 10+i*30, teamA))
	}
	for i := 0; i < conceded; i++ {
		m.Events = append(m.Events, ev("Goal", 20+i*30, teamB))
	}
	return m
}
