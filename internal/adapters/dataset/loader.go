// Package dataset lee volcados JSON del proveedor de datos de fútbol y los
// convierte al MatchRecord normalizado que consumen los analizadores.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

// Dataset es el contenido normalizado de un volcado.
type Dataset struct {
	Matches []domain.MatchRecord
	Odds    []domain.MarketOdd
	Skipped int // registros sin un local y un visitante distintos
}

// Decode lee un volcado desde r.
func Decode(r io.Reader) (Dataset, error) {
	var raw dump
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Dataset{}, fmt.Errorf("dataset.Decode: %w", err)
	}

	ds := Dataset{
		Matches: make([]domain.MatchRecord, 0, len(raw.Fixtures)),
		Odds:    make([]domain.MarketOdd, 0),
	}
	for _, f := range raw.Fixtures {
		m := mapFixture(f)
		if !m.Valid() {
			slog.Debug("dataset: skipping fixture without two distinct sides", "fixture_id", f.ID)
			ds.Skipped++
			continue
		}
		ds.Matches = append(ds.Matches, m)
		ds.Odds = append(ds.Odds, mapOdds(f.ID, f.Odds)...)
	}
	return ds, nil
}

// Load abre y decodifica el fichero en path.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset.Load: open: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset.Load: %s: %w", path, err)
	}
	return ds, nil
}

// Import carga el volcado en path y lo persiste en store.
func Import(ctx context.Context, path string, store ports.Storage) (Dataset, error) {
	ds, err := Load(path)
	if err != nil {
		return Dataset{}, err
	}
	if err := store.SaveMatches(ctx, ds.Matches); err != nil {
		return Dataset{}, fmt.Errorf("dataset.Import: save matches: %w", err)
	}
	if err := store.SaveOdds(ctx, ds.Odds); err != nil {
		return Dataset{}, fmt.Errorf("dataset.Import: save odds: %w", err)
	}
	slog.Info("dataset imported",
		"path", path,
		"matches", len(ds.Matches),
		"odds", len(ds.Odds),
		"skipped", ds.Skipped,
	)
	return ds, nil
}
