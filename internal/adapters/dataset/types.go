package dataset

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DTOs raw del volcado JSON del proveedor (shape estilo Sportmonks v3).
// Solo se usan dentro de este paquete; la conversión a domain está en mapping.go.

// dump es el fichero completo: una lista de partidos con sus includes.
type dump struct {
	Fixtures []rawFixture `json:"fixtures"`
}

type rawFixture struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	StartingAt   string           `json:"starting_at"`
	State        rawState         `json:"state"`
	Minute       flexInt          `json:"minute"`
	Participants []rawParticipant `json:"participants"`
	Events       []rawEvent       `json:"events"`
	Statistics   []rawStatistic   `json:"statistics"`
	Scores       []rawScore       `json:"scores"`
	Comments     []rawComment     `json:"comments"`
	Odds         []rawOdd         `json:"odds"`
}

type rawState struct {
	DeveloperName string `json:"developer_name"`
}

type rawParticipant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Meta struct {
		Location string `json:"location"`
	} `json:"meta"`
}

type rawType struct {
	Name string `json:"name"`
}

type rawEvent struct {
	Type          rawType `json:"type"`
	Minute        flexInt `json:"minute"`
	ExtraMinute   flexInt `json:"extra_minute"`
	ParticipantID int64   `json:"participant_id"`
}

type rawStatistic struct {
	TypeID        int     `json:"type_id"`
	Type          rawType `json:"type"`
	ParticipantID int64   `json:"participant_id"`
	Data          struct {
		Value flexFloat `json:"value"`
	} `json:"data"`
}

type rawScore struct {
	Description string `json:"description"`
	Score       struct {
		Goals       flexInt `json:"goals"`
		Participant string  `json:"participant"`
	} `json:"score"`
}

type rawComment struct {
	Comment     string  `json:"comment"`
	Minute      flexInt `json:"minute"`
	ExtraMinute flexInt `json:"extra_minute"`
}

// rawOdd es una cuota del bookmaker. value llega como string decimal ("1.90")
// o como número; total/handicap es la línea del mercado.
type rawOdd struct {
	MarketDescription string          `json:"market_description"`
	Label             string          `json:"label"`
	Value             json.RawMessage `json:"value"`
	Total             json.RawMessage `json:"total"`
	Handicap          json.RawMessage `json:"handicap"`
}

// flexInt acepta números, strings numéricos ("45", "45+2") y null.
// Set=false si el valor no estaba o no era numérico.
type flexInt struct {
	Value int
	Extra int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	base, extra, hasExtra := strings.Cut(s, "+")
	n, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		if fl, ferr := strconv.ParseFloat(strings.TrimSpace(base), 64); ferr == nil && fl == float64(int(fl)) {
			n = int(fl)
		} else {
			return nil
		}
	}
	f.Value = n
	f.Set = true
	if hasExtra {
		if x, err := strconv.Atoi(strings.TrimSpace(extra)); err == nil {
			f.Extra = x
		}
	}
	return nil
}

// flexFloat acepta números, strings numéricos con o sin "%" y null.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSuffix(strings.TrimSpace(str), "%")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	f.Value = v
	f.Set = true
	return nil
}

// parseDecimal lee un número JSON o un string decimal sin pasar por float64.
// ok=false para null, vacío o texto no numérico.
func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		s = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
