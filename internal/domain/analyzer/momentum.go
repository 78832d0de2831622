package analyzer

import "github.com/alejandrodnm/matchlens/internal/domain"

// Pesos y ventana del índice de presión.
const (
	shotPressure    = 20
	cornerPressure  = 15
	pressureWindow  = 5
	maxPressure     = 100
	minMomentumMins = 1
)

// MomentumPoint es el estado de un equipo en un minuto.
type MomentumPoint struct {
	Shots             int `json:"shots"`
	Corners           int `json:"corners"`
	Instant           int `json:"instant"`
	Pressure          int `json:"pressure"`
	CumulativeShots   int `json:"cumulative_shots"`
	CumulativeCorners int `json:"cumulative_corners"`
}

// MomentumMinute agrupa ambos equipos en un minuto.
type MomentumMinute struct {
	Minute int           `json:"minute"`
	Home   MomentumPoint `json:"home"`
	Away   MomentumPoint `json:"away"`
}

// Momentum es la línea temporal de presión de un partido.
type Momentum struct {
	FixtureID int64            `json:"fixture_id"`
	State     string           `json:"state"`
	Minutes   []MomentumMinute `json:"minutes"`
}

// MomentumEstimator calcula la presión minuto a minuto de un único partido.
type MomentumEstimator struct {
	vocab *domain.Vocabulary
}

// NewMomentumEstimator crea el estimador.
func NewMomentumEstimator(opts Options) *MomentumEstimator {
	opts = opts.withDefaults()
	return &MomentumEstimator{vocab: opts.Vocabulary}
}

// momentumBound devuelve el último minuto a recorrer. Un partido terminado llega
// al menos al 90; uno en vivo se corta en el minuto reportado. Un minuto fuera de
// [0, MaxMatchMinute] es malformado y se trata como no reportado.
func momentumBound(m domain.MatchRecord) int {
	bound := m.CurrentMinute
	if bound < 0 || bound > domain.MaxMatchMinute {
		bound = 0
	}
	if m.State == domain.StateFinished && bound < domain.FullTimeMinute {
		bound = domain.FullTimeMinute
	}
	if bound < minMomentumMins {
		bound = minMomentumMins
	}
	return bound
}

// Estimate recorre los minutos 1..bound. Los eventos del descuento (45+2) cuentan
// en su minuto base; los eventos posteriores al bound o con minuto malformado se ignoran.
func (e *MomentumEstimator) Estimate(m domain.MatchRecord) Momentum {
	bound := momentumBound(m)
	home, _ := m.Home()
	away, _ := m.Away()

	type perMinute struct{ shots, corners int }
	homeMin := make([]perMinute, bound+1)
	awayMin := make([]perMinute, bound+1)

	for _, ev := range m.Events {
		if ev.Minute < minMomentumMins || ev.Minute > bound {
			continue
		}
		var slot *perMinute
		switch ev.TeamID {
		case home.TeamID:
			slot = &homeMin[ev.Minute]
		case away.TeamID:
			slot = &awayMin[ev.Minute]
		default:
			continue
		}
		switch kind := e.vocab.EventKind(ev.Type); {
		case kind.IsGoal() || kind == domain.KindShot:
			slot.shots++
		case kind == domain.KindCorner:
			slot.corners++
		}
	}

	out := Momentum{
		FixtureID: m.ID,
		State:     string(m.State),
		Minutes:   make([]MomentumMinute, 0, bound),
	}
	homeTrack := newPressureTrack()
	awayTrack := newPressureTrack()
	for minute := 1; minute <= bound; minute++ {
		out.Minutes = append(out.Minutes, MomentumMinute{
			Minute: minute,
			Home:   homeTrack.step(homeMin[minute].shots, homeMin[minute].corners),
			Away:   awayTrack.step(awayMin[minute].shots, awayMin[minute].corners),
		})
	}
	return out
}

// pressureTrack mantiene la ventana móvil de un equipo.
type pressureTrack struct {
	window [pressureWindow]int
	pos    int

	cumShots, cumCorners int
}

func newPressureTrack() *pressureTrack {
	return &pressureTrack{}
}

func (t *pressureTrack) step(shots, corners int) MomentumPoint {
	instant := shots*shotPressure + corners*cornerPressure
	t.window[t.pos%pressureWindow] = instant
	t.pos++

	sum := 0
	for _, v := range t.window {
		sum += v
	}
	if sum > maxPressure {
		sum = maxPressure
	}

	t.cumShots += shots
	t.cumCorners += corners
	return MomentumPoint{
		Shots:             shots,
		Corners:           corners,
		Instant:           instant,
		Pressure:          sum,
		CumulativeShots:   t.cumShots,
		CumulativeCorners: t.cumCorners,
	}
}
