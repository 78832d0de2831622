package dataset

import (
	"strings"
	"time"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// mapFixture convierte un rawFixture al MatchRecord normalizado.
func mapFixture(r rawFixture) domain.MatchRecord {
	m := domain.MatchRecord{
		ID:         r.ID,
		Name:       r.Name,
		StartingAt: parseStartingAt(r.StartingAt),
		State:      mapState(r.State.DeveloperName),
	}
	if r.Minute.Set {
		m.CurrentMinute = r.Minute.Value
	}

	for _, p := range r.Participants {
		m.Participants = append(m.Participants, domain.Participant{
			TeamID:   p.ID,
			Name:     p.Name,
			Location: domain.Location(strings.ToLower(strings.TrimSpace(p.Meta.Location))),
		})
	}

	for _, e := range r.Events {
		m.Events = append(m.Events, domain.Event{
			Type:        e.Type.Name,
			Minute:      minuteOf(e.Minute),
			ExtraMinute: extraOf(e.Minute, e.ExtraMinute),
			TeamID:      e.ParticipantID,
		})
	}

	for _, s := range r.Statistics {
		if !s.Data.Value.Set {
			continue
		}
		m.Statistics = append(m.Statistics, domain.StatisticEntry{
			TypeID:   s.TypeID,
			TypeName: s.Type.Name,
			TeamID:   s.ParticipantID,
			Value:    s.Data.Value.Value,
		})
	}

	m.Scores = mapScores(r.Scores)

	for _, c := range r.Comments {
		if strings.TrimSpace(c.Comment) == "" {
			continue
		}
		m.Comments = append(m.Comments, domain.Comment{
			Text:        c.Comment,
			Minute:      minuteOf(c.Minute),
			ExtraMinute: extraOf(c.Minute, c.ExtraMinute),
		})
	}

	return m
}

// minuteOf devuelve MalformedMinute si el proveedor no mandó un minuto numérico.
func minuteOf(f flexInt) int {
	if !f.Set {
		return domain.MalformedMinute
	}
	return f.Value
}

// extraOf prioriza extra_minute; si falta, usa el "+x" del propio minuto ("45+2").
func extraOf(minute, extra flexInt) int {
	if extra.Set {
		return extra.Value
	}
	return minute.Extra
}

// mapState traduce el developer_name del proveedor a los tres estados del dominio.
func mapState(name string) domain.MatchState {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FT", "AET", "FT_PEN", "AWARDED":
		return domain.StateFinished
	case "INPLAY_1ST_HALF", "INPLAY_2ND_HALF", "HT", "BREAK", "INPLAY_ET",
		"INPLAY_ET_2ND_HALF", "EXTRA_TIME_BREAK", "PEN_BREAK", "INPLAY_PENALTIES", "LIVE":
		return domain.StateLive
	default:
		return domain.StateNotStarted
	}
}

// mapScores toma los goles por lado de las líneas CURRENT y 1ST_HALF.
func mapScores(raw []rawScore) domain.Scores {
	var s domain.Scores
	for _, r := range raw {
		if !r.Score.Goals.Set {
			continue
		}
		var line *domain.ScoreLine
		switch strings.ToUpper(strings.TrimSpace(r.Description)) {
		case "CURRENT":
			line = &s.Current
		case "1ST_HALF":
			line = &s.HalfTime
		default:
			continue
		}
		switch strings.ToLower(r.Score.Participant) {
		case string(domain.LocationHome):
			line.Home = r.Score.Goals.Value
			line.Known = true
		case string(domain.LocationAway):
			line.Away = r.Score.Goals.Value
			line.Known = true
		}
	}
	return s
}

// mapOdds convierte las cuotas de un fixture. Precios no numéricos se descartan.
// El precio se redondea a 3 decimales en decimal antes de pasar a float64.
func mapOdds(fixtureID int64, raw []rawOdd) []domain.MarketOdd {
	odds := make([]domain.MarketOdd, 0, len(raw))
	for _, r := range raw {
		price, ok := parseDecimal(r.Value)
		if !ok || !price.IsPositive() {
			continue
		}
		odd := domain.MarketOdd{
			FixtureID:  fixtureID,
			MarketName: strings.TrimSpace(r.MarketDescription),
			Label:      strings.TrimSpace(r.Label),
			Price:      price.Round(3).InexactFloat64(),
		}
		if line, ok := parseDecimal(r.Total); ok {
			odd.Line = line.String()
		} else if line, ok := parseDecimal(r.Handicap); ok {
			odd.Line = line.String()
		}
		odds = append(odds, odd)
	}
	return odds
}

// parseStartingAt prueba los formatos que usa el proveedor.
func parseStartingAt(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
