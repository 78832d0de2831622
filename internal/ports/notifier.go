package ports

import (
	"context"

	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

// Notifier presenta los análisis al usuario.
type Notifier interface {
	// Notify muestra un resumen por fixture con los value bets encontrados.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, analyses []analyzer.FixtureAnalysis) error
}
