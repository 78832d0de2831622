package storage

// sqlite.go: dataset local de partidos y cuotas.
//
// Estrategia:
//   - `matches`: UNA fila por partido (UPSERT). Los dos participantes van en
//     columnas para que la selección de historial (equipo + location, fecha DESC,
//     LIMIT N) sea una sola query indexada. Timeline, estadísticas, marcadores y
//     comentarios viajan en `payload` como JSON.
//   - `odds`: una fila por fixture/mercado/selección/línea. SaveOdds reemplaza
//     las cuotas de cada fixture en bloque.
//   - Cache en memoria: huella del payload por partido para no reescribir
//     partidos que no cambiaron al reimportar el mismo dump.
//   - Prune al arrancar: cuotas no reescritas en 30 días (updated_at). La fecha
//     del fixture no cuenta.

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

const schema = `
-- Un partido por fila; participantes desnormalizados para la selección de historial
CREATE TABLE IF NOT EXISTS matches (
    id             INTEGER PRIMARY KEY,
    name           TEXT     NOT NULL DEFAULT '',
    starting_at    TEXT     NOT NULL,
    state          TEXT     NOT NULL,
    current_minute INTEGER  NOT NULL DEFAULT 0,
    home_team_id   INTEGER  NOT NULL,
    home_name      TEXT     NOT NULL DEFAULT '',
    away_team_id   INTEGER  NOT NULL,
    away_name      TEXT     NOT NULL DEFAULT '',
    payload        TEXT     NOT NULL,
    fingerprint    INTEGER  NOT NULL DEFAULT 0,
    updated_at     DATETIME NOT NULL
);

-- Cuotas decimales por fixture
CREATE TABLE IF NOT EXISTS odds (
    fixture_id  INTEGER  NOT NULL,
    market_name TEXT     NOT NULL,
    label       TEXT     NOT NULL,
    line        TEXT     NOT NULL DEFAULT '',
    price       REAL     NOT NULL,
    updated_at  DATETIME NOT NULL DEFAULT '',
    PRIMARY KEY (fixture_id, market_name, label, line)
);

CREATE INDEX IF NOT EXISTS idx_matches_home ON matches(home_team_id, starting_at DESC);
CREATE INDEX IF NOT EXISTS idx_matches_away ON matches(away_team_id, starting_at DESC);
CREATE INDEX IF NOT EXISTS idx_matches_at   ON matches(starting_at);
`

// Bases creadas antes de que odds tuviera updated_at. El error de columna
// duplicada se ignora.
const migrateOddsUpdatedAt = `ALTER TABLE odds ADD COLUMN updated_at DATETIME NOT NULL DEFAULT ''`

const (
	retentionOdds = 30 * 24 * time.Hour // cuotas: 30 días desde la última escritura
	timeLayout    = "2006-01-02T15:04:05Z"
)

// matchPayload es la parte del MatchRecord que se guarda como JSON.
type matchPayload struct {
	Events     []domain.Event          `json:"events"`
	Statistics []domain.StatisticEntry `json:"statistics"`
	Scores     domain.Scores           `json:"scores"`
	Comments   []domain.Comment        `json:"comments,omitempty"`
}

// SQLiteStorage implementa ports.Storage, ports.HistoryProvider,
// ports.FixtureProvider y ports.OddsProvider usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db    *sql.DB
	cache map[int64]uint64 // matchID → huella del payload guardado
	mu    sync.Mutex
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema, limpia cuotas antiguas y precarga la cache.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	db.Exec(migrateOddsUpdatedAt)

	s := &SQLiteStorage{
		db:    db,
		cache: make(map[int64]uint64),
	}
	s.pruneOld(context.Background())
	s.warmCache(context.Background())
	return s, nil
}

// SaveMatches hace upsert de los partidos válidos que cambiaron respecto a lo
// guardado. Los registros sin un local y un visitante se descartan.
func (s *SQLiteStorage) SaveMatches(ctx context.Context, matches []domain.MatchRecord) error {
	if len(matches) == 0 {
		return nil
	}

	type row struct {
		m           domain.MatchRecord
		payload     string
		fingerprint uint64
	}
	var toWrite []row
	for _, m := range matches {
		if !m.Valid() {
			continue
		}
		raw, err := json.Marshal(matchPayload{
			Events:     m.Events,
			Statistics: m.Statistics,
			Scores:     m.Scores,
			Comments:   m.Comments,
		})
		if err != nil {
			return fmt.Errorf("storage.SaveMatches: encode match %d: %w", m.ID, err)
		}
		fp := fingerprint(m, raw)
		if !s.changed(m.ID, fp) {
			continue
		}
		toWrite = append(toWrite, row{m: m, payload: string(raw), fingerprint: fp})
	}
	if len(toWrite) == 0 {
		return nil // nada nuevo
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveMatches: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches
			(id, name, starting_at, state, current_minute,
			 home_team_id, home_name, away_team_id, away_name,
			 payload, fingerprint, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name           = excluded.name,
			starting_at    = excluded.starting_at,
			state          = excluded.state,
			current_minute = excluded.current_minute,
			home_team_id   = excluded.home_team_id,
			home_name      = excluded.home_name,
			away_team_id   = excluded.away_team_id,
			away_name      = excluded.away_name,
			payload        = excluded.payload,
			fingerprint    = excluded.fingerprint,
			updated_at     = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveMatches: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range toWrite {
		home, _ := r.m.Home()
		away, _ := r.m.Away()
		if _, err := stmt.ExecContext(ctx,
			r.m.ID,
			r.m.Name,
			r.m.StartingAt.UTC().Format(timeLayout),
			string(r.m.State),
			r.m.CurrentMinute,
			home.TeamID,
			home.Name,
			away.TeamID,
			away.Name,
			r.payload,
			int64(r.fingerprint),
			now,
		); err != nil {
			return fmt.Errorf("storage.SaveMatches: upsert %d: %w", r.m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveMatches: commit: %w", err)
	}

	s.mu.Lock()
	for _, r := range toWrite {
		s.cache[r.m.ID] = r.fingerprint
	}
	s.mu.Unlock()
	return nil
}

// SaveOdds reemplaza las cuotas de cada fixture presente en odds.
func (s *SQLiteStorage) SaveOdds(ctx context.Context, odds []domain.MarketOdd) error {
	if len(odds) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveOdds: begin tx: %w", err)
	}
	defer tx.Rollback()

	cleared := make(map[int64]bool)
	for _, o := range odds {
		if cleared[o.FixtureID] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM odds WHERE fixture_id = ?`, o.FixtureID); err != nil {
			return fmt.Errorf("storage.SaveOdds: clear fixture %d: %w", o.FixtureID, err)
		}
		cleared[o.FixtureID] = true
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO odds (fixture_id, market_name, label, line, price, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fixture_id, market_name, label, line) DO UPDATE SET
			price      = excluded.price,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveOdds: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(timeLayout)
	for _, o := range odds {
		if _, err := stmt.ExecContext(ctx, o.FixtureID, o.MarketName, o.Label, o.Line, o.Price, now); err != nil {
			return fmt.Errorf("storage.SaveOdds: insert fixture %d %s/%s: %w", o.FixtureID, o.MarketName, o.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveOdds: commit: %w", err)
	}
	return nil
}

const matchColumns = `id, name, starting_at, state, current_minute,
	home_team_id, home_name, away_team_id, away_name, payload`

// FetchTeamHistory devuelve los últimos limit partidos terminados de teamID en
// la location dada, anteriores a before, del más reciente al más antiguo.
func (s *SQLiteStorage) FetchTeamHistory(ctx context.Context, teamID int64, location domain.Location, before time.Time, limit int) ([]domain.MatchRecord, error) {
	var column string
	switch location {
	case domain.LocationHome:
		column = "home_team_id"
	case domain.LocationAway:
		column = "away_team_id"
	default:
		return nil, fmt.Errorf("storage.FetchTeamHistory: invalid location %q", location)
	}
	if limit <= 0 {
		limit = domain.DefaultHistorySize
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE `+column+` = ? AND state = ? AND starting_at < ?
		ORDER BY starting_at DESC, id DESC
		LIMIT ?
	`, teamID, string(domain.StateFinished), before.UTC().Format(timeLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("storage.FetchTeamHistory: query: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, fmt.Errorf("storage.FetchTeamHistory: %w", err)
	}
	return matches, nil
}

// FetchMatch devuelve el partido completo o ports.ErrNotFound.
func (s *SQLiteStorage) FetchMatch(ctx context.Context, fixtureID int64) (domain.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = ?`, fixtureID)
	if err != nil {
		return domain.MatchRecord{}, fmt.Errorf("storage.FetchMatch: query: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return domain.MatchRecord{}, fmt.Errorf("storage.FetchMatch: %w", err)
	}
	if len(matches) == 0 {
		return domain.MatchRecord{}, fmt.Errorf("storage.FetchMatch: fixture %d: %w", fixtureID, ports.ErrNotFound)
	}
	return matches[0], nil
}

// FetchFixture devuelve el fixture con el id dado o ports.ErrNotFound.
func (s *SQLiteStorage) FetchFixture(ctx context.Context, fixtureID int64) (domain.Fixture, error) {
	m, err := s.FetchMatch(ctx, fixtureID)
	if err != nil {
		return domain.Fixture{}, err
	}
	f, ok := domain.FixtureFromMatch(m)
	if !ok {
		return domain.Fixture{}, fmt.Errorf("storage.FetchFixture: fixture %d has no home/away pair: %w", fixtureID, ports.ErrNotFound)
	}
	return f, nil
}

// FetchFixturesOn devuelve los partidos que empiezan en el día UTC de date.
func (s *SQLiteStorage) FetchFixturesOn(ctx context.Context, date time.Time) ([]domain.Fixture, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE starting_at >= ? AND starting_at < ?
		ORDER BY starting_at, id
	`, day.Format(timeLayout), day.Add(24*time.Hour).Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("storage.FetchFixturesOn: query: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows)
	if err != nil {
		return nil, fmt.Errorf("storage.FetchFixturesOn: %w", err)
	}
	fixtures := make([]domain.Fixture, 0, len(matches))
	for _, m := range matches {
		if f, ok := domain.FixtureFromMatch(m); ok {
			fixtures = append(fixtures, f)
		}
	}
	return fixtures, nil
}

// FetchOdds devuelve las cuotas de un fixture. Sin cuotas devuelve un slice vacío.
func (s *SQLiteStorage) FetchOdds(ctx context.Context, fixtureID int64) ([]domain.MarketOdd, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fixture_id, market_name, label, line, price
		FROM odds
		WHERE fixture_id = ?
		ORDER BY market_name, label, line
	`, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("storage.FetchOdds: query: %w", err)
	}
	defer rows.Close()

	odds := []domain.MarketOdd{}
	for rows.Next() {
		var o domain.MarketOdd
		if err := rows.Scan(&o.FixtureID, &o.MarketName, &o.Label, &o.Line, &o.Price); err != nil {
			return nil, fmt.Errorf("storage.FetchOdds: scan row: %w", err)
		}
		odds = append(odds, o)
	}
	return odds, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- helpers internos ---

func scanMatches(rows *sql.Rows) ([]domain.MatchRecord, error) {
	var out []domain.MatchRecord
	for rows.Next() {
		var m domain.MatchRecord
		var home, away domain.Participant
		var startingAt, state, payload string
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&startingAt,
			&state,
			&m.CurrentMinute,
			&home.TeamID,
			&home.Name,
			&away.TeamID,
			&away.Name,
			&payload,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		var p matchPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, fmt.Errorf("decode match %d: %w", m.ID, err)
		}

		at, err := time.Parse(timeLayout, startingAt)
		if err != nil {
			return nil, fmt.Errorf("parse starting_at of match %d: %w", m.ID, err)
		}
		m.StartingAt = at
		m.State = domain.MatchState(state)
		home.Location = domain.LocationHome
		away.Location = domain.LocationAway
		m.Participants = []domain.Participant{home, away}
		m.Events = p.Events
		m.Statistics = p.Statistics
		m.Scores = p.Scores
		m.Comments = p.Comments
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// changed devuelve true si el partido no está en caché o su huella cambió.
func (s *SQLiteStorage) changed(id int64, fp uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.cache[id]
	return !ok || prev != fp
}

// fingerprint resume las columnas y el payload de un partido.
func fingerprint(m domain.MatchRecord, payload []byte) uint64 {
	h := fnv.New64a()
	home, _ := m.Home()
	away, _ := m.Away()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d|%s|%d|%s|", m.Name, m.StartingAt.UTC().Format(timeLayout),
		m.State, m.CurrentMinute, home.TeamID, home.Name, away.TeamID, away.Name)
	h.Write(payload)
	return h.Sum64()
}

// pruneOld elimina cuotas no reescritas desde hace retentionOdds para mantener
// la DB ligera. Las filas sin updated_at (bases antiguas) se conservan.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionOdds).Format(timeLayout)
	s.db.ExecContext(ctx, `DELETE FROM odds WHERE updated_at != '' AND updated_at < ?`, cutoff)
}

// warmCache precarga la caché desde la DB al arrancar, evitando reescrituras
// en la primera importación tras un reinicio.
func (s *SQLiteStorage) warmCache(ctx context.Context) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, fingerprint FROM matches`)
	if err != nil {
		return
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var id, fp int64
		if rows.Scan(&id, &fp) == nil {
			s.cache[id] = uint64(fp)
		}
	}
}

var (
	_ ports.Storage         = (*SQLiteStorage)(nil)
	_ ports.HistoryProvider = (*SQLiteStorage)(nil)
	_ ports.FixtureProvider = (*SQLiteStorage)(nil)
	_ ports.OddsProvider    = (*SQLiteStorage)(nil)
)
