package ports

import (
	"context"
	"errors"
	"time"

	"github.com/alejandrodnm/matchlens/internal/domain"
)

// ErrNotFound lo devuelven los providers cuando el fixture pedido no existe.
var ErrNotFound = errors.New("not found")

// HistoryProvider obtiene el historial de contexto de un equipo.
type HistoryProvider interface {
	// FetchTeamHistory devuelve como máximo limit partidos terminados de teamID
	// jugados en location antes de before, ordenados del más reciente al más antiguo.
	FetchTeamHistory(ctx context.Context, teamID int64, location domain.Location, before time.Time, limit int) ([]domain.MatchRecord, error)
}

// FixtureProvider resuelve los fixtures a analizar.
type FixtureProvider interface {
	// FetchFixture devuelve el fixture con el id dado o ErrNotFound.
	FetchFixture(ctx context.Context, fixtureID int64) (domain.Fixture, error)

	// FetchFixturesOn devuelve los fixtures que empiezan en el día (UTC) de date.
	FetchFixturesOn(ctx context.Context, date time.Time) ([]domain.Fixture, error)

	// FetchMatch devuelve el registro completo de un partido (timeline incluido)
	// para el MomentumEstimator.
	FetchMatch(ctx context.Context, fixtureID int64) (domain.MatchRecord, error)
}

// OddsProvider obtiene las cuotas de un fixture. Un fixture sin cuotas devuelve
// un slice vacío, no un error.
type OddsProvider interface {
	FetchOdds(ctx context.Context, fixtureID int64) ([]domain.MarketOdd, error)
}
