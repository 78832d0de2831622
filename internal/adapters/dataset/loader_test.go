package dataset_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/matchlens/internal/adapters/dataset"
	"github.com/alejandrodnm/matchlens/internal/adapters/storage"
	"github.com/alejandrodnm/matchlens/internal/domain"
)

const dumpPath = "../../../testdata/fixtures/provider_dump.json"

func TestLoad_MapsFixture(t *testing.T) {
	ds, err := dataset.Load(dumpPath)
	require.NoError(t, err)
	require.Len(t, ds.Matches, 2)
	assert.Equal(t, 1, ds.Skipped)

	m := ds.Matches[0]
	assert.Equal(t, int64(19134453), m.ID)
	assert.Equal(t, time.Date(2025, 4, 5, 15, 0, 0, 0, time.UTC), m.StartingAt)
	assert.Equal(t, domain.StateFinished, m.State)
	assert.Equal(t, 94, m.CurrentMinute)

	home, ok := m.Home()
	require.True(t, ok)
	assert.Equal(t, int64(19), home.TeamID)
	assert.Equal(t, "Arsenal", home.Name)
	away, ok := m.Away()
	require.True(t, ok)
	assert.Equal(t, int64(18), away.TeamID)

	require.Len(t, m.Events, 4)
	assert.Equal(t, "Goal", m.Events[0].Type)
	assert.Equal(t, 23, m.Events[0].Minute)
	// "45+2" → minuto 45, añadido 2
	assert.Equal(t, 45, m.Events[1].Minute)
	assert.Equal(t, 2, m.Events[1].ExtraMinute)
	// minuto no numérico
	assert.Equal(t, domain.MalformedMinute, m.Events[2].Minute)

	// la estadística con value null se descarta
	require.Len(t, m.Statistics, 3)
	assert.Equal(t, 34, m.Statistics[0].TypeID)
	assert.Equal(t, 7.0, m.Statistics[0].Value)
	assert.Equal(t, 58.0, m.Statistics[2].Value)

	assert.Equal(t, domain.ScoreLine{Home: 1, Away: 1, Known: true}, m.Scores.Current)
	assert.Equal(t, domain.ScoreLine{Home: 1, Away: 0, Known: true}, m.Scores.HalfTime)

	require.Len(t, m.Comments, 1)
	assert.Equal(t, 12, m.Comments[0].Minute)

	upcoming := ds.Matches[1]
	assert.Equal(t, domain.StateNotStarted, upcoming.State)
	assert.Equal(t, 0, upcoming.CurrentMinute)
	assert.Empty(t, upcoming.Events)
}

func TestLoad_MapsOdds(t *testing.T) {
	ds, err := dataset.Load(dumpPath)
	require.NoError(t, err)

	// la cuota "suspended" y las del fixture inválido no entran
	require.Len(t, ds.Odds, 4)
	for _, o := range ds.Odds {
		assert.Equal(t, int64(19134453), o.FixtureID)
	}

	over, ok := domain.FindOdd(ds.Odds, domain.MarketGoalsOverUnder, domain.LabelOver, "2.5")
	require.True(t, ok)
	assert.InDelta(t, 1.9, over, 1e-9)

	under, ok := domain.FindOdd(ds.Odds, domain.MarketGoalsOverUnder, "Under", "2.5")
	require.True(t, ok)
	assert.InDelta(t, 1.95, under, 1e-9)

	btts, ok := domain.FindOdd(ds.Odds, domain.MarketBothTeamsToScore, domain.LabelYes, "")
	require.True(t, ok)
	assert.InDelta(t, 1.727, btts, 1e-9)

	assert.Equal(t, "-0.5", ds.Odds[3].Line)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := dataset.Decode(strings.NewReader(`{"fixtures": [`))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := dataset.Load("does-not-exist.json")
	assert.Error(t, err)
}

func TestImport_PersistsIntoStorage(t *testing.T) {
	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	ds, err := dataset.Import(ctx, dumpPath, db)
	require.NoError(t, err)
	assert.Len(t, ds.Matches, 2)

	fx, err := db.FetchFixture(ctx, 19134460)
	require.NoError(t, err)
	assert.Equal(t, "Liverpool", fx.Home.Name)
	assert.Equal(t, "Fulham", fx.Away.Name)

	odds, err := db.FetchOdds(ctx, 19134453)
	require.NoError(t, err)
	assert.Len(t, odds, 4)

	history, err := db.FetchTeamHistory(ctx, 19, domain.LocationHome, fx.StartingAt, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(19134453), history[0].ID)
}
