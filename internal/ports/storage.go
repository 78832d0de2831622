package ports

import (
	"context"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// Storage persiste el dataset local del que leen los providers.
type Storage interface {
	// SaveMatches hace upsert de los partidos (participantes, eventos y estadísticas).
	SaveMatches(ctx context.Context, matches []domain.MatchRecord) error

	// SaveOdds reemplaza las cuotas de los fixtures presentes en odds.
	SaveOdds(ctx context.Context, odds []domain.MarketOdd) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
