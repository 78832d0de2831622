package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrVocabularyCollision se devuelve al construir un Vocabulary cuando un
// mismo código o nombre del proveedor apunta a dos tipos canónicos distintos.
var ErrVocabularyCollision = errors.New("vocabulary collision")

// EventKind es el tipo canónico de un evento del timeline.
type EventKind int

const (
	KindOther EventKind = iota
	KindGoal
	KindOwnGoal
	KindCorner
	KindShot
	KindYellowCard
	KindRedCard
	KindYellowRedCard
	KindCard // tarjeta de tipo no reconocido (nombre contiene "card")
)

// IsCard devuelve true para cualquier tipo de tarjeta.
func (k EventKind) IsCard() bool {
	switch k {
	case KindYellowCard, KindRedCard, KindYellowRedCard, KindCard:
		return true
	}
	return false
}

// IsGoal devuelve true para goles y goles en propia puerta.
func (k EventKind) IsGoal() bool {
	return k == KindGoal || k == KindOwnGoal
}

func (k EventKind) String() string {
	switch k {
	case KindGoal:
		return "goal"
	case KindOwnGoal:
		return "own_goal"
	case KindCorner:
		return "corner"
	case KindShot:
		return "shot"
	case KindYellowCard:
		return "yellow_card"
	case KindRedCard:
		return "red_card"
	case KindYellowRedCard:
		return "yellow_red_card"
	case KindCard:
		return "card"
	default:
		return "other"
	}
}

// StatKind es el tipo canónico de una estadística agregada.
type StatKind int

const (
	StatUnknown StatKind = iota
	StatGoals
	StatCorners
	StatShotsTotal
	StatShotsOnTarget
	StatShotsOffTarget
	StatShotsBlocked
	StatShotsInsideBox
	StatShotsOutsideBox
	StatPossession
	StatOffsides
	StatFouls
	StatPasses
	StatYellowCards
	StatRedCards
)

func (k StatKind) String() string {
	switch k {
	case StatGoals:
		return "goals"
	case StatCorners:
		return "corners"
	case StatShotsTotal:
		return "shots_total"
	case StatShotsOnTarget:
		return "shots_on_target"
	case StatShotsOffTarget:
		return "shots_off_target"
	case StatShotsBlocked:
		return "shots_blocked"
	case StatShotsInsideBox:
		return "shots_inside_box"
	case StatShotsOutsideBox:
		return "shots_outside_box"
	case StatPossession:
		return "possession"
	case StatOffsides:
		return "offsides"
	case StatFouls:
		return "fouls"
	case StatPasses:
		return "passes"
	case StatYellowCards:
		return "yellow_cards"
	case StatRedCards:
		return "red_cards"
	default:
		return "unknown"
	}
}

// StatDefinition describe cómo reconoce el proveedor una estadística.
type StatDefinition struct {
	Kind  StatKind
	Code  int // type_id del proveedor; 0 = sin código
	Names []string
}

// EventDefinition describe los nombres con los que el proveedor envía un evento.
type EventDefinition struct {
	Kind  EventKind
	Names []string
}

// Vocabulary traduce el vocabulario del proveedor a tipos canónicos.
// Se construye una vez y se inyecta en los analizadores; es de solo lectura.
type Vocabulary struct {
	events    map[string]EventKind
	statNames map[string]StatKind
	statCodes map[int]StatKind
}

// DefaultStatDefinitions usa los type_id de Sportmonks v3.
func DefaultStatDefinitions() []StatDefinition {
	return []StatDefinition{
		{Kind: StatGoals, Code: 52, Names: []string{"Goals"}},
		{Kind: StatCorners, Code: 34, Names: []string{"Corners", "Corner Kicks"}},
		{Kind: StatShotsTotal, Code: 42, Names: []string{"Shots Total", "Total Shots"}},
		{Kind: StatShotsOnTarget, Code: 86, Names: []string{"Shots On Target", "Shots On Goal"}},
		{Kind: StatShotsOffTarget, Code: 41, Names: []string{"Shots Off Target", "Shots Off Goal"}},
		{Kind: StatShotsBlocked, Code: 58, Names: []string{"Shots Blocked", "Blocked Shots"}},
		{Kind: StatShotsInsideBox, Code: 49, Names: []string{"Shots Insidebox", "Shots Inside Box"}},
		{Kind: StatShotsOutsideBox, Code: 50, Names: []string{"Shots Outsidebox", "Shots Outside Box"}},
		{Kind: StatPossession, Code: 45, Names: []string{"Ball Possession %", "Ball Possession", "Possession"}},
		{Kind: StatOffsides, Code: 51, Names: []string{"Offsides"}},
		{Kind: StatFouls, Code: 56, Names: []string{"Fouls"}},
		{Kind: StatPasses, Code: 80, Names: []string{"Passes", "Total Passes"}},
		{Kind: StatYellowCards, Code: 84, Names: []string{"Yellowcards", "Yellow Cards"}},
		{Kind: StatRedCards, Code: 83, Names: []string{"Redcards", "Red Cards"}},
	}
}

// DefaultEventDefinitions cubre la deriva de nombres conocida entre proveedores.
func DefaultEventDefinitions() []EventDefinition {
	return []EventDefinition{
		{Kind: KindGoal, Names: []string{"Goal", "Penalty", "Penalty Goal"}},
		{Kind: KindOwnGoal, Names: []string{"OwnGoal", "Own Goal"}},
		{Kind: KindCorner, Names: []string{"Corner", "Corner Kick"}},
		{Kind: KindShot, Names: []string{"Shot", "Shot On Target", "Shot Off Target", "Shot Blocked", "Missed Penalty", "Woodwork"}},
		{Kind: KindYellowCard, Names: []string{"Yellowcard", "Yellow Card"}},
		{Kind: KindRedCard, Names: []string{"Redcard", "Red Card"}},
		{Kind: KindYellowRedCard, Names: []string{"Yellowredcard", "Yellow Red Card", "Second Yellow Card"}},
	}
}

// NewVocabulary construye la tabla de traducción. Devuelve ErrVocabularyCollision
// si dos definiciones reclaman el mismo código o el mismo nombre normalizado.
func NewVocabulary(events []EventDefinition, stats []StatDefinition) (*Vocabulary, error) {
	v := &Vocabulary{
		events:    make(map[string]EventKind),
		statNames: make(map[string]StatKind),
		statCodes: make(map[int]StatKind),
	}

	for _, def := range events {
		for _, name := range def.Names {
			key := normalizeName(name)
			if prev, ok := v.events[key]; ok && prev != def.Kind {
				return nil, fmt.Errorf("domain.NewVocabulary: event %q is both %s and %s: %w",
					name, prev, def.Kind, ErrVocabularyCollision)
			}
			v.events[key] = def.Kind
		}
	}

	for _, def := range stats {
		if def.Code != 0 {
			if prev, ok := v.statCodes[def.Code]; ok && prev != def.Kind {
				return nil, fmt.Errorf("domain.NewVocabulary: stat code %d is both %s and %s: %w",
					def.Code, prev, def.Kind, ErrVocabularyCollision)
			}
			v.statCodes[def.Code] = def.Kind
		}
		for _, name := range def.Names {
			key := normalizeName(name)
			if prev, ok := v.statNames[key]; ok && prev != def.Kind {
				return nil, fmt.Errorf("domain.NewVocabulary: stat %q is both %s and %s: %w",
					name, prev, def.Kind, ErrVocabularyCollision)
			}
			v.statNames[key] = def.Kind
		}
	}

	return v, nil
}

// DefaultVocabulary devuelve el vocabulario por defecto. Las definiciones por
// defecto no tienen colisiones; un panic aquí es un bug de programación.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary(DefaultEventDefinitions(), DefaultStatDefinitions())
	if err != nil {
		panic(err)
	}
	return v
}

// ParseEventKind resuelve un nombre canónico ("corner", "yellow_card").
func ParseEventKind(name string) (EventKind, bool) {
	for k := KindGoal; k <= KindCard; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KindOther, false
}

// ParseStatKind resuelve un nombre canónico de estadística ("corners", "fouls").
func ParseStatKind(name string) (StatKind, bool) {
	for k := StatGoals; k <= StatRedCards; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return StatUnknown, false
}

// BuildVocabulary añade a las definiciones por defecto los nombres extra del
// proveedor, indexados por nombre canónico. Un nombre canónico desconocido es
// un error; un nombre extra que ya pertenece a otro tipo devuelve
// ErrVocabularyCollision.
func BuildVocabulary(extraEvents, extraStats map[string][]string) (*Vocabulary, error) {
	events := DefaultEventDefinitions()
	for _, key := range sortedKeys(extraEvents) {
		kind, ok := ParseEventKind(key)
		if !ok {
			return nil, fmt.Errorf("domain.BuildVocabulary: unknown event kind %q", key)
		}
		events = append(events, EventDefinition{Kind: kind, Names: extraEvents[key]})
	}

	stats := DefaultStatDefinitions()
	for _, key := range sortedKeys(extraStats) {
		kind, ok := ParseStatKind(key)
		if !ok {
			return nil, fmt.Errorf("domain.BuildVocabulary: unknown stat kind %q", key)
		}
		stats = append(stats, StatDefinition{Kind: kind, Names: extraStats[key]})
	}

	return NewVocabulary(events, stats)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EventKind resuelve el tipo canónico de un nombre de evento del proveedor.
// Cualquier nombre que contenga "card" se trata como tarjeta aunque no esté en la tabla.
func (v *Vocabulary) EventKind(typeName string) EventKind {
	key := normalizeName(typeName)
	if k, ok := v.events[key]; ok {
		return k
	}
	if strings.Contains(key, "card") {
		return KindCard
	}
	return KindOther
}

// StatKind resuelve una estadística. El código tiene prioridad sobre el nombre.
func (v *Vocabulary) StatKind(entry StatisticEntry) StatKind {
	if entry.TypeID != 0 {
		if k, ok := v.statCodes[entry.TypeID]; ok {
			return k
		}
	}
	if k, ok := v.statNames[normalizeName(entry.TypeName)]; ok {
		return k
	}
	return StatUnknown
}

// Stat devuelve la suma de los valores de kind para teamID en el partido.
// ok=false si el partido no trae esa estadística para el equipo.
func (v *Vocabulary) Stat(m MatchRecord, kind StatKind, teamID int64) (float64, bool) {
	total, found := 0.0, false
	for _, s := range m.Statistics {
		if s.TeamID != teamID || v.StatKind(s) != kind {
			continue
		}
		total += s.Value
		found = true
	}
	return total, found
}

// normalizeName pasa a minúsculas y elimina espacios, guiones y underscores,
// además de una "s" final de plural ("Corners" == "Corner").
func normalizeName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		sb.WriteRune(r)
	}
	key := sb.String()
	if len(key) > 3 && strings.HasSuffix(key, "s") && !strings.HasSuffix(key, "ss") {
		key = strings.TrimSuffix(key, "s")
	}
	return key
}
