package analyzer

import (
	"regexp"
	"strings"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// cornerCommentRe reconoce líneas de comentario que anuncian un córner:
// "X awarded a corner" o el formato Opta "Corner, Arsenal. Conceded by ...".
var cornerCommentRe = regexp.MustCompile(`(?i)awarded a corner|corner,\s`)

// UnattributedTeam es el TeamID de un evento derivado cuyo equipo no se pudo inferir.
const UnattributedTeam int64 = 0

// CornersFromCommentary deduce eventos de córner a partir del texto libre.
// Cada evento lleva Derived=true. El equipo se atribuye buscando el nombre de un
// participante dentro del texto; si no aparece ninguno el TeamID queda en
// UnattributedTeam y el evento solo cuenta para el total.
func CornersFromCommentary(m domain.MatchRecord) []domain.Event {
	var out []domain.Event
	for _, c := range m.Comments {
		if !cornerCommentRe.MatchString(c.Text) {
			continue
		}
		out = append(out, domain.Event{
			Type:        "Corner",
			Minute:      c.Minute,
			ExtraMinute: c.ExtraMinute,
			TeamID:      attributeTeam(c.Text, m.Participants),
			Derived:     true,
		})
	}
	return out
}

// attributeTeam devuelve el participante cuyo nombre aparece en el texto.
// Si aparecen ambos gana el que aparece antes; a igual posición, el nombre más largo
// ("Internazionale" frente a "Inter").
func attributeTeam(text string, participants []domain.Participant) int64 {
	lower := strings.ToLower(text)
	best := UnattributedTeam
	bestIdx, bestLen := -1, 0
	for _, p := range participants {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			continue
		}
		idx := strings.Index(lower, name)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && len(name) > bestLen) {
			best, bestIdx, bestLen = p.TeamID, idx, len(name)
		}
	}
	return best
}
