package notify_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/matchlens/internal/adapters/notify"
	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

func makeAnalysis(id int64, name string, withValue bool) analyzer.FixtureAnalysis {
	a := analyzer.FixtureAnalysis{
		RunID: "run-1",
		Fixture: domain.Fixture{
			ID:         id,
			Name:       name,
			StartingAt: time.Date(2025, 4, 12, 15, 0, 0, 0, time.UTC),
			Home:       domain.Participant{TeamID: 19, Name: "Arsenal", Location: domain.LocationHome},
			Away:       domain.Participant{TeamID: 18, Name: "Chelsea", Location: domain.LocationAway},
		},
		Home: analyzer.TeamAnalysis{
			Team:  domain.Participant{TeamID: 19, Name: "Arsenal"},
			Goals: analyzer.GoalStats{GamesCount: 10, Form: "WWDLW", Averages: analyzer.GoalAverages{Scored: 2.1}},
		},
		Away: analyzer.TeamAnalysis{
			Team:  domain.Participant{TeamID: 18, Name: "Chelsea"},
			Goals: analyzer.GoalStats{GamesCount: 9, Form: "LDWWL"},
		},
		Calculator: analyzer.Calculator{
			Goals: analyzer.GoalsCalculator{
				Expected: analyzer.ExpectedGoals{Home: 1.55, Away: 1.2, Total: 2.75},
				Over25: domain.MarketProbability{
					Market: domain.MarketGoalsOverUnder, Label: domain.LabelOver, Line: "2.5", Probability: 60,
				},
				BTTS: domain.MarketProbability{
					Market: domain.MarketBothTeamsToScore, Label: domain.LabelYes, Probability: 55,
				},
			},
		},
		Prediction: analyzer.ScorePrediction{
			Probable: []analyzer.ScoreCandidate{{Label: "2-1", Home: 2, Away: 1}},
			Possible: []analyzer.ScoreCandidate{{Label: "1-1", Home: 1, Away: 1}},
		},
		PredictionsTable: []analyzer.PredictionRow{{Market: "btts", Home: 60, Away: 50, Combined: 55}},
	}
	if withValue {
		odd, implied, edge := 2.5, 40.0, 20.0
		a.Calculator.Goals.Over25.Odd = &odd
		a.Calculator.Goals.Over25.ImpliedProbability = &implied
		a.Calculator.Goals.Over25.Edge = &edge
		a.Calculator.Goals.Over25.Value = true
	}
	return a
}

func TestConsole_Notify_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	err := n.Notify(context.Background(), []analyzer.FixtureAnalysis{
		makeAnalysis(1, "Arsenal vs Chelsea", true),
		makeAnalysis(2, "Liverpool vs Fulham", false),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Arsenal vs Chelsea")
	assert.Contains(t, lines[0], "xG 1.55-1.20")
	assert.Contains(t, lines[0], "2-1")
	assert.Contains(t, lines[0], "VALUE: Goals Over/Under Over 2.5")
	assert.NotContains(t, lines[1], "VALUE")
}

func TestConsole_Notify_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Contains(t, buf.String(), "no fixtures analyzed")
}

func TestConsole_Notify_FullTables(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.Notify(context.Background(), []analyzer.FixtureAnalysis{makeAnalysis(1, "Arsenal vs Chelsea", true)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "--- GOALS ---")
	assert.Contains(t, out, "--- CORNERS ---")
	assert.Contains(t, out, "--- CARDS ---")
	assert.Contains(t, out, "--- PREDICTIONS ---")
	assert.Contains(t, out, "WWDLW")
	assert.Contains(t, out, "2.10")
	assert.Contains(t, out, ">>> VALUE: Goals Over/Under Over 2.5 @ 2.50 (edge +20.00)")
	assert.Contains(t, out, "Probable: 2-1")
	assert.Contains(t, out, "run: run-1")
	assert.NotContains(t, out, "SUMMARY")
}

func TestConsole_Notify_SummaryForBatches(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	err := n.Notify(context.Background(), []analyzer.FixtureAnalysis{
		makeAnalysis(1, "Arsenal vs Chelsea", true),
		makeAnalysis(2, "Liverpool vs Fulham", false),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SUMMARY (2 fixtures)")
	assert.Contains(t, out, "value bets: 1 across 2 fixtures")
}

func TestConsole_LongFixtureNameTruncated(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, n.Notify(context.Background(), []analyzer.FixtureAnalysis{
		makeAnalysis(1, strings.Repeat("A", 60), false),
	}))
	assert.Contains(t, buf.String(), "...")
}

func TestConsole_PrintMomentum(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	n.PrintMomentum(analyzer.Momentum{
		FixtureID: 7,
		State:     "live",
		Minutes: []analyzer.MomentumMinute{
			{Minute: 1},
			{Minute: 2, Home: analyzer.MomentumPoint{Pressure: 35, CumulativeShots: 1, CumulativeCorners: 1}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "MOMENTUM #7 (live, 2 min)")
	assert.Contains(t, out, "2'")
	assert.Contains(t, out, "###")
	assert.NotContains(t, out, "no pressure recorded")
}

func TestConsole_PrintMomentum_Quiet(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	n.PrintMomentum(analyzer.Momentum{FixtureID: 7, State: "finished", Minutes: []analyzer.MomentumMinute{{Minute: 1}}})

	assert.Contains(t, buf.String(), "no pressure recorded")
}
