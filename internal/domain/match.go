package domain

import (
	"sort"
	"time"
)

// Location es el lado del campo en el que juega un participante.
type Location string

const (
	LocationHome Location = "home"
	LocationAway Location = "away"
)

// Valid devuelve true si la location es home o away.
func (l Location) Valid() bool {
	return l == LocationHome || l == LocationAway
}

// MatchState es el estado del partido según el proveedor.
type MatchState string

const (
	StateNotStarted MatchState = "not_started"
	StateLive       MatchState = "live"
	StateFinished   MatchState = "finished"
)

// MalformedMinute marca un minuto que el proveedor no reportó o que no es numérico.
const MalformedMinute = -1

// Participant es uno de los dos equipos de un partido.
type Participant struct {
	TeamID   int64    `json:"team_id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// Event es un suceso del timeline (gol, tarjeta, córner, tiro...).
// Type es el nombre del proveedor; el tipo canónico lo resuelve Vocabulary.
type Event struct {
	Type        string `json:"type"`
	Minute      int    `json:"minute"`
	ExtraMinute int    `json:"extra_minute,omitempty"`
	TeamID      int64  `json:"team_id"`
	// Derived indica que el evento no viene del feed sino que se dedujo
	// a partir del texto de comentarios. Su atribución es heurística.
	Derived bool `json:"derived,omitempty"`
}

// StatisticEntry es un valor agregado por equipo (ej. "Corners" = 7).
type StatisticEntry struct {
	TypeID   int     `json:"type_id,omitempty"`
	TypeName string  `json:"type_name"`
	TeamID   int64   `json:"team_id"`
	Value    float64 `json:"value"`
}

// ScoreLine es un marcador home-away. Known=false si el proveedor no lo envió.
type ScoreLine struct {
	Home  int  `json:"home"`
	Away  int  `json:"away"`
	Known bool `json:"known"`
}

// Scores agrupa los marcadores por periodo.
type Scores struct {
	Current  ScoreLine `json:"current"`
	HalfTime ScoreLine `json:"half_time"`
}

// Comment es una línea de comentario en texto libre.
type Comment struct {
	Text        string `json:"text"`
	Minute      int    `json:"minute"`
	ExtraMinute int    `json:"extra_minute,omitempty"`
}

// MatchRecord es el shape normalizado que consumen todos los analizadores.
type MatchRecord struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	StartingAt    time.Time        `json:"starting_at"`
	State         MatchState       `json:"state"`
	CurrentMinute int              `json:"current_minute"`
	Participants  []Participant    `json:"participants"`
	Events        []Event          `json:"events"`
	Statistics    []StatisticEntry `json:"statistics"`
	Scores        Scores           `json:"scores"`
	Comments      []Comment        `json:"comments,omitempty"`
}

// Home devuelve el participante local. ok=false si el registro no tiene uno.
func (m MatchRecord) Home() (Participant, bool) {
	return m.byLocation(LocationHome)
}

// Away devuelve el participante visitante.
func (m MatchRecord) Away() (Participant, bool) {
	return m.byLocation(LocationAway)
}

func (m MatchRecord) byLocation(loc Location) (Participant, bool) {
	for _, p := range m.Participants {
		if p.Location == loc {
			return p, true
		}
	}
	return Participant{}, false
}

// Participant devuelve el participante con el teamID dado.
func (m MatchRecord) Participant(teamID int64) (Participant, bool) {
	for _, p := range m.Participants {
		if p.TeamID == teamID {
			return p, true
		}
	}
	return Participant{}, false
}

// Opponent devuelve el rival de teamID. ok=false si teamID no jugó el partido.
func (m MatchRecord) Opponent(teamID int64) (Participant, bool) {
	if _, ok := m.Participant(teamID); !ok {
		return Participant{}, false
	}
	for _, p := range m.Participants {
		if p.TeamID != teamID {
			return p, true
		}
	}
	return Participant{}, false
}

// Valid devuelve true si el registro tiene exactamente un local y un visitante
// y ambos son equipos distintos.
func (m MatchRecord) Valid() bool {
	if len(m.Participants) != 2 {
		return false
	}
	home, okHome := m.Home()
	away, okAway := m.Away()
	return okHome && okAway && home.TeamID != away.TeamID
}

// Fixture identifica un partido a analizar: los dos equipos y su fecha.
type Fixture struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	StartingAt time.Time   `json:"starting_at"`
	Home       Participant `json:"home"`
	Away       Participant `json:"away"`
}

// FixtureFromMatch construye un Fixture a partir de un MatchRecord.
// ok=false si el registro no tiene ambos participantes.
func FixtureFromMatch(m MatchRecord) (Fixture, bool) {
	if !m.Valid() {
		return Fixture{}, false
	}
	home, _ := m.Home()
	away, _ := m.Away()
	return Fixture{
		ID:         m.ID,
		Name:       m.Name,
		StartingAt: m.StartingAt,
		Home:       home,
		Away:       away,
	}, true
}

// DefaultHistorySize es el máximo de partidos por historial de contexto.
const DefaultHistorySize = 10

// NormalizeHistory devuelve una copia del historial ordenada por fecha
// descendente (más reciente primero) y truncada a limit partidos.
// No modifica el slice de entrada. limit <= 0 usa DefaultHistorySize.
func NormalizeHistory(matches []MatchRecord, limit int) []MatchRecord {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	out := make([]MatchRecord, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartingAt.Equal(out[j].StartingAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartingAt.After(out[j].StartingAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
