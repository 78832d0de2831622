package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/matchlens/internal/adapters/storage"
	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/ports"
)

var kickoff = time.Date(2025, 4, 12, 15, 0, 0, 0, time.UTC)

func makeMatch(id, home, away int64, at time.Time, state domain.MatchState) domain.MatchRecord {
	return domain.MatchRecord{
		ID:         id,
		Name:       "Home vs Away",
		StartingAt: at,
		State:      state,
		Participants: []domain.Participant{
			{TeamID: home, Name: "Home", Location: domain.LocationHome},
			{TeamID: away, Name: "Away", Location: domain.LocationAway},
		},
		Events: []domain.Event{
			{Type: "Corner", Minute: 12, TeamID: home},
			{Type: "Goal", Minute: 45, ExtraMinute: 2, TeamID: away},
		},
		Statistics: []domain.StatisticEntry{{TypeID: 34, TypeName: "Corners", TeamID: home, Value: 6}},
		Scores:     domain.Scores{Current: domain.ScoreLine{Home: 0, Away: 1, Known: true}},
		Comments:   []domain.Comment{{Text: "Corner, Home.", Minute: 12}},
	}
}

func newDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStorage_SaveAndFetchMatch(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	in := makeMatch(1, 10, 20, kickoff, domain.StateFinished)
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{in}))

	got, err := db.FetchMatch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, in.StartingAt, got.StartingAt)
	assert.Equal(t, in.Participants, got.Participants)
	assert.Equal(t, in.Events, got.Events)
	assert.Equal(t, in.Statistics, got.Statistics)
	assert.Equal(t, in.Scores, got.Scores)
	assert.Equal(t, in.Comments, got.Comments)
}

func TestSQLiteStorage_FetchMatch_NotFound(t *testing.T) {
	db := newDB(t)

	_, err := db.FetchMatch(context.Background(), 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = db.FetchFixture(context.Background(), 404)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSQLiteStorage_FetchTeamHistory_SelectsContext(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	var matches []domain.MatchRecord
	// 12 partidos de 10 en casa, uno por semana
	for i := 1; i <= 12; i++ {
		matches = append(matches, makeMatch(int64(i), 10, 30, kickoff.AddDate(0, 0, -7*i), domain.StateFinished))
	}
	// fuera de casa: no debe aparecer en el historial home
	matches = append(matches, makeMatch(100, 40, 10, kickoff.AddDate(0, 0, -3), domain.StateFinished))
	// futuro / no terminado
	matches = append(matches, makeMatch(101, 10, 50, kickoff.AddDate(0, 0, 7), domain.StateNotStarted))
	matches = append(matches, makeMatch(102, 10, 50, kickoff.AddDate(0, 0, -1), domain.StateLive))
	require.NoError(t, db.SaveMatches(ctx, matches))

	home, err := db.FetchTeamHistory(ctx, 10, domain.LocationHome, kickoff, 10)
	require.NoError(t, err)
	require.Len(t, home, 10)
	assert.Equal(t, int64(1), home[0].ID)
	assert.Equal(t, int64(10), home[9].ID)
	for i := 1; i < len(home); i++ {
		assert.True(t, home[i-1].StartingAt.After(home[i].StartingAt))
	}

	away, err := db.FetchTeamHistory(ctx, 10, domain.LocationAway, kickoff, 10)
	require.NoError(t, err)
	require.Len(t, away, 1)
	assert.Equal(t, int64(100), away[0].ID)
}

func TestSQLiteStorage_FetchTeamHistory_InvalidLocation(t *testing.T) {
	db := newDB(t)
	_, err := db.FetchTeamHistory(context.Background(), 10, domain.Location("neutral"), kickoff, 10)
	assert.Error(t, err)
}

func TestSQLiteStorage_FetchFixturesOn(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{
		makeMatch(1, 10, 20, kickoff, domain.StateNotStarted),
		makeMatch(2, 30, 40, kickoff.Add(-3*time.Hour), domain.StateNotStarted),
		makeMatch(3, 50, 60, kickoff.AddDate(0, 0, 1), domain.StateNotStarted),
	}))

	fixtures, err := db.FetchFixturesOn(ctx, kickoff)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
	assert.Equal(t, int64(2), fixtures[0].ID)
	assert.Equal(t, int64(30), fixtures[0].Home.TeamID)
	assert.Equal(t, int64(40), fixtures[0].Away.TeamID)
}

func TestSQLiteStorage_SaveMatches_Upsert(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	m := makeMatch(1, 10, 20, kickoff, domain.StateLive)
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{m}))
	// reimportar sin cambios no falla
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{m}))

	m.State = domain.StateFinished
	m.CurrentMinute = 94
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{m}))

	got, err := db.FetchMatch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateFinished, got.State)
	assert.Equal(t, 94, got.CurrentMinute)
}

func TestSQLiteStorage_SaveMatches_SkipsInvalid(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	bad := makeMatch(1, 10, 20, kickoff, domain.StateFinished)
	bad.Participants = bad.Participants[:1]
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{bad}))

	_, err := db.FetchMatch(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSQLiteStorage_Odds(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveOdds(ctx, []domain.MarketOdd{
		{FixtureID: 1, MarketName: domain.MarketGoalsOverUnder, Label: "Over", Line: "2.5", Price: 1.9},
		{FixtureID: 1, MarketName: domain.MarketGoalsOverUnder, Label: "Under", Line: "2.5", Price: 1.95},
	}))
	// segunda carga reemplaza las cuotas del fixture
	require.NoError(t, db.SaveOdds(ctx, []domain.MarketOdd{
		{FixtureID: 1, MarketName: domain.MarketBothTeamsToScore, Label: "Yes", Price: 1.7},
	}))

	odds, err := db.FetchOdds(ctx, 1)
	require.NoError(t, err)
	require.Len(t, odds, 1)
	assert.Equal(t, 1.7, odds[0].Price)

	none, err := db.FetchOdds(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSQLiteStorage_SaveEmptySlices(t *testing.T) {
	db := newDB(t)
	assert.NoError(t, db.SaveMatches(context.Background(), nil))
	assert.NoError(t, db.SaveOdds(context.Background(), nil))
}

func TestSQLiteStorage_ReopenKeepsOddsOfPastFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchlens.db")
	ctx := context.Background()

	db, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveMatches(ctx, []domain.MatchRecord{makeMatch(1, 10, 20, kickoff, domain.StateFinished)}))
	require.NoError(t, db.SaveOdds(ctx, []domain.MarketOdd{
		{FixtureID: 1, MarketName: domain.MarketGoalsOverUnder, Label: "Over", Line: "2.5", Price: 1.9},
	}))
	require.NoError(t, db.Close())

	reopened, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	defer reopened.Close()

	odds, err := reopened.FetchOdds(ctx, 1)
	require.NoError(t, err)
	require.Len(t, odds, 1)
	assert.Equal(t, 1.9, odds[0].Price)
}
