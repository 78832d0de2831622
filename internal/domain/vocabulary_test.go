package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary_EventKindNameDrift(t *testing.T) {
	v := DefaultVocabulary()

	assert.Equal(t, KindYellowCard, v.EventKind("Yellowcard"))
	assert.Equal(t, KindYellowCard, v.EventKind("Yellow Card"))
	assert.Equal(t, KindYellowCard, v.EventKind("yellow_card"))
	assert.Equal(t, KindCorner, v.EventKind("Corners"))
	assert.Equal(t, KindCorner, v.EventKind("corner"))
	assert.Equal(t, KindOwnGoal, v.EventKind("Own Goal"))
	assert.Equal(t, KindGoal, v.EventKind("goal"))
	assert.Equal(t, KindOther, v.EventKind("Substitution"))
}

func TestVocabulary_UnknownCardNameIsCard(t *testing.T) {
	v := DefaultVocabulary()
	k := v.EventKind("Green Card")
	assert.Equal(t, KindCard, k)
	assert.True(t, k.IsCard())
}

func TestVocabulary_StatCodeWinsOverName(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, StatCorners, v.StatKind(StatisticEntry{TypeID: 34, TypeName: "whatever"}))
	assert.Equal(t, StatCorners, v.StatKind(StatisticEntry{TypeName: "Corner"}))
	assert.Equal(t, StatShotsOnTarget, v.StatKind(StatisticEntry{TypeID: 86}))
	assert.Equal(t, StatUnknown, v.StatKind(StatisticEntry{TypeName: "Attacks"}))
}

func TestNewVocabulary_CodeCollision(t *testing.T) {
	// Un mismo type_id reclamado por Corners y Shots On Target.
	stats := []StatDefinition{
		{Kind: StatShotsOnTarget, Code: 86, Names: []string{"Shots On Target"}},
		{Kind: StatCorners, Code: 86, Names: []string{"Corners"}},
	}
	_, err := NewVocabulary(nil, stats)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVocabularyCollision)
}

func TestNewVocabulary_NameCollision(t *testing.T) {
	events := []EventDefinition{
		{Kind: KindGoal, Names: []string{"Goal"}},
		{Kind: KindShot, Names: []string{"goals"}},
	}
	_, err := NewVocabulary(events, nil)
	assert.ErrorIs(t, err, ErrVocabularyCollision)
}

func TestNewVocabulary_DuplicateSameKindIsFine(t *testing.T) {
	stats := []StatDefinition{
		{Kind: StatCorners, Code: 34, Names: []string{"Corners"}},
		{Kind: StatCorners, Code: 34, Names: []string{"corner"}},
	}
	_, err := NewVocabulary(nil, stats)
	assert.NoError(t, err)
}

func TestVocabulary_StatSumsPerTeam(t *testing.T) {
	v := DefaultVocabulary()
	m := MatchRecord{Statistics: []StatisticEntry{
		{TypeID: 34, TeamID: 1, Value: 4},
		{TypeName: "Corners", TeamID: 2, Value: 6},
	}}

	got, ok := v.Stat(m, StatCorners, 1)
	assert.True(t, ok)
	assert.Equal(t, 4.0, got)

	_, ok = v.Stat(m, StatGoals, 1)
	assert.False(t, ok)
}

// --- intervals ---

func TestIntervalBucketizer_Edges(t *testing.T) {
	b := NewIntervalBucketizer()
	cases := []struct {
		minute, extra int
		want          string
	}{
		{0, 0, "0-15"},
		{15, 0, "0-15"},
		{16, 0, "16-30"},
		{45, 0, "31-45"},
		{45, 3, "31-45"},
		{46, 0, "46-60"},
		{75, 0, "61-75"},
		{76, 0, "76-90"},
		{90, 5, "76-90"},
		{105, 0, "76-90"},
		{120, 0, "76-90"},
	}
	for _, c := range cases {
		got, ok := b.Bucket(c.minute, c.extra)
		assert.True(t, ok, "minute %d+%d", c.minute, c.extra)
		assert.Equal(t, c.want, got, "minute %d+%d", c.minute, c.extra)
	}
}

func TestIntervalBucketizer_MalformedMinute(t *testing.T) {
	b := NewIntervalBucketizer()
	for _, minute := range []int{MalformedMinute, -10, 121} {
		_, ok := b.Bucket(minute, 0)
		assert.False(t, ok, "minute %d", minute)
	}
}

func TestLateWindows(t *testing.T) {
	assert.True(t, LateFirstHalfWindow.Contains(37, 0))
	assert.True(t, LateFirstHalfWindow.Contains(45, 2))
	assert.False(t, LateFirstHalfWindow.Contains(36, 0))
	assert.False(t, LateFirstHalfWindow.Contains(46, 0))
	assert.True(t, LateMatchWindow.Contains(87, 0))
	assert.True(t, LateMatchWindow.Contains(90, 4))
	assert.False(t, LateMatchWindow.Contains(86, 0))
}

// --- history ---

func TestNormalizeHistory_SortsAndTruncates(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var in []MatchRecord
	for i := 0; i < 12; i++ {
		in = append(in, MatchRecord{ID: int64(i), StartingAt: base.AddDate(0, 0, i)})
	}

	out := NormalizeHistory(in, 10)
	require.Len(t, out, 10)
	assert.Equal(t, int64(11), out[0].ID)
	assert.Equal(t, int64(2), out[9].ID)
	// la entrada no se modifica
	assert.Equal(t, int64(0), in[0].ID)
}

func TestMatchRecord_OpponentAndValid(t *testing.T) {
	m := MatchRecord{Participants: []Participant{
		{TeamID: 1, Name: "Arsenal", Location: LocationHome},
		{TeamID: 2, Name: "Chelsea", Location: LocationAway},
	}}
	assert.True(t, m.Valid())

	opp, ok := m.Opponent(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), opp.TeamID)

	_, ok = m.Opponent(99)
	assert.False(t, ok)

	f, ok := FixtureFromMatch(m)
	require.True(t, ok)
	assert.Equal(t, "Arsenal", f.Home.Name)
}

func TestBuildVocabulary_ExtraNames(t *testing.T) {
	v, err := BuildVocabulary(
		map[string][]string{"corner": {"Corner Awarded"}},
		map[string][]string{"fouls": {"Fouls Committed"}},
	)
	require.NoError(t, err)

	assert.Equal(t, KindCorner, v.EventKind("corner awarded"))
	assert.Equal(t, KindGoal, v.EventKind("Goal"))
	assert.Equal(t, StatFouls, v.StatKind(StatisticEntry{TypeName: "Fouls Committed"}))
}

func TestBuildVocabulary_Errors(t *testing.T) {
	_, err := BuildVocabulary(map[string][]string{"shot": {"Goal"}}, nil)
	assert.ErrorIs(t, err, ErrVocabularyCollision)

	_, err = BuildVocabulary(map[string][]string{"penalty_shootout": {"Pen"}}, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVocabularyCollision)

	_, err = BuildVocabulary(nil, map[string][]string{"xg": {"Expected Goals"}})
	assert.Error(t, err)
}

func TestParseKinds(t *testing.T) {
	k, ok := ParseEventKind("yellow_red_card")
	assert.True(t, ok)
	assert.Equal(t, KindYellowRedCard, k)

	_, ok = ParseEventKind("other")
	assert.False(t, ok)

	s, ok := ParseStatKind("shots_on_target")
	assert.True(t, ok)
	assert.Equal(t, StatShotsOnTarget, s)
}
