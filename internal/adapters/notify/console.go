package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/matchlens/internal/domain"
	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
	now   func() time.Time
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table, now: time.Now}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table, now: time.Now}
}

// Notify imprime los análisis en el modo configurado.
func (c *Console) Notify(_ context.Context, analyses []analyzer.FixtureAnalysis) error {
	if len(analyses) == 0 {
		fmt.Fprintf(c.out, "[%s] no fixtures analyzed\n", c.now().Format("15:04:05"))
		return nil
	}

	if !c.table {
		c.printCompact(analyses)
		return nil
	}
	for _, a := range analyses {
		c.printFull(a)
	}
	if len(analyses) > 1 {
		c.printSummary(analyses)
	}
	return nil
}

// printCompact imprime una línea por fixture con lo esencial.
func (c *Console) printCompact(analyses []analyzer.FixtureAnalysis) {
	now := c.now().Format("15:04:05")
	for _, a := range analyses {
		goals := a.Calculator.Goals
		corners := a.Calculator.Corners

		var sb strings.Builder
		fmt.Fprintf(&sb, "[%s] %s | xG %.2f-%.2f | O2.5 %.0f%% | BTTS %.0f%% | corners %.2f",
			now, fixtureLabel(a.Fixture, 40),
			goals.Expected.Home, goals.Expected.Away,
			goals.Over25.Probability, goals.BTTS.Probability,
			corners.Expected.Total)
		if len(a.Prediction.Probable) > 0 {
			fmt.Fprintf(&sb, " | %s", a.Prediction.Probable[0].Label)
		}
		if bets := a.Calculator.ValueBets(); len(bets) > 0 {
			labels := make([]string, 0, len(bets))
			for _, b := range bets {
				labels = append(labels, marketLabel(b))
			}
			fmt.Fprintf(&sb, " | VALUE: %s", strings.Join(labels, ", "))
		}
		fmt.Fprintln(c.out, sb.String())
	}
}

// printFull imprime todas las tablas de un fixture.
func (c *Console) printFull(a analyzer.FixtureAnalysis) {
	kickoff := "-"
	if !a.Fixture.StartingAt.IsZero() {
		kickoff = a.Fixture.StartingAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(c.out, "\n=== %s (#%d, %s) ===\n", fixtureLabel(a.Fixture, 60), a.Fixture.ID, kickoff)
	if a.RunID != "" {
		fmt.Fprintf(c.out, "  run: %s\n", a.RunID)
	}

	c.printGoals(a)
	c.printCorners(a)
	c.printCards(a)
	c.printPredictions(a)
	c.printCalculator(a)
	c.printScores(a.Prediction)
}

func (c *Console) printGoals(a analyzer.FixtureAnalysis) {
	fmt.Fprintln(c.out, "\n  --- GOALS ---")
	table := tablewriter.NewWriter(c.out)
	table.Header("Team", "GP", "Form", "Scored", "Conceded", "O2.5", "BTTS", "CS", "FTS", "1st")
	for _, t := range []analyzer.TeamAnalysis{a.Home, a.Away} {
		g := t.Goals
		table.Append(
			teamLabel(t.Team),
			fmt.Sprintf("%d", g.GamesCount),
			dash(g.Form),
			fmt.Sprintf("%.2f", g.Averages.Scored),
			fmt.Sprintf("%.2f", g.Averages.Conceded),
			pct(g.OverPercentage(2.5)),
			pct(g.Markets.BTTS),
			pct(g.Markets.CleanSheets),
			pct(g.Markets.FailedToScore),
			pct(g.FirstToScore.Percentage),
		)
	}
	table.Render()
}

func (c *Console) printCorners(a analyzer.FixtureAnalysis) {
	fmt.Fprintln(c.out, "\n  --- CORNERS ---")
	table := tablewriter.NewWriter(c.out)
	table.Header("Team", "GP", "For", "Against", "Total", "O9.5", "Race 5", "37-HT", "87-FT", "Derived")
	for _, t := range []analyzer.TeamAnalysis{a.Home, a.Away} {
		cs := t.Corners
		race := "-"
		if r, ok := cs.Race(5); ok {
			race = pct(r.Percentage)
		}
		table.Append(
			teamLabel(t.Team),
			fmt.Sprintf("%d", cs.GamesCount),
			fmt.Sprintf("%.2f", cs.Averages.For),
			fmt.Sprintf("%.2f", cs.Averages.Against),
			fmt.Sprintf("%.2f", cs.Averages.Total),
			pct(cs.OverPercentage(9.5)),
			race,
			windowFrequency(cs.LateWindows, domain.LateFirstHalfWindow.Label),
			windowFrequency(cs.LateWindows, domain.LateMatchWindow.Label),
			fmt.Sprintf("%d", cs.DerivedCorners),
		)
	}
	table.Render()
}

func (c *Console) printCards(a analyzer.FixtureAnalysis) {
	fmt.Fprintln(c.out, "\n  --- CARDS ---")
	table := tablewriter.NewWriter(c.out)
	table.Header("Team", "GP", "For", "Against", "Total", "Yellow", "Red", "O3.5", "O4.5")
	for _, t := range []analyzer.TeamAnalysis{a.Home, a.Away} {
		cs := t.Cards
		table.Append(
			teamLabel(t.Team),
			fmt.Sprintf("%d", cs.GamesCount),
			fmt.Sprintf("%.2f", cs.Averages.For),
			fmt.Sprintf("%.2f", cs.Averages.Against),
			fmt.Sprintf("%.2f", cs.Averages.Total),
			fmt.Sprintf("%.2f", cs.Averages.YellowFor),
			fmt.Sprintf("%.2f", cs.Averages.RedFor),
			pct(cs.OverPercentage(3.5)),
			pct(cs.OverPercentage(4.5)),
		)
	}
	table.Render()
}

func (c *Console) printPredictions(a analyzer.FixtureAnalysis) {
	if len(a.PredictionsTable) == 0 {
		return
	}
	fmt.Fprintln(c.out, "\n  --- PREDICTIONS ---")
	table := tablewriter.NewWriter(c.out)
	table.Header("Market", teamLabel(a.Home.Team), teamLabel(a.Away.Team), "Combined")
	for _, r := range a.PredictionsTable {
		table.Append(r.Market, pct(r.Home), pct(r.Away), pct(r.Combined))
	}
	table.Render()
}

func (c *Console) printCalculator(a analyzer.FixtureAnalysis) {
	g := a.Calculator.Goals
	cr := a.Calculator.Corners
	fmt.Fprintf(c.out, "\n  --- CALCULATOR (xG %.2f-%.2f, xC %.2f) ---\n",
		g.Expected.Home, g.Expected.Away, cr.Expected.Total)

	table := tablewriter.NewWriter(c.out)
	table.Header("Market", "Line", "Prob", "Odd", "Implied", "Edge", "Value")
	for _, m := range a.Calculator.Markets() {
		value := ""
		if m.Value {
			value = "VALUE"
		}
		table.Append(
			m.Market+" "+m.Label,
			dash(m.Line),
			fmt.Sprintf("%.2f%%", m.Probability),
			optFloat(m.Odd, "%.2f"),
			optFloat(m.ImpliedProbability, "%.2f%%"),
			optFloat(m.Edge, "%+.2f"),
			value,
		)
	}
	table.Render()

	bets := a.Calculator.ValueBets()
	if len(bets) == 0 {
		fmt.Fprintln(c.out, "  no value bets")
		return
	}
	for _, b := range bets {
		fmt.Fprintf(c.out, "  >>> VALUE: %s @ %.2f (edge %+.2f)\n", marketLabel(b), *b.Odd, *b.Edge)
	}
}

func (c *Console) printScores(p analyzer.ScorePrediction) {
	if len(p.Probable) == 0 {
		return
	}
	join := func(cands []analyzer.ScoreCandidate) string {
		labels := make([]string, 0, len(cands))
		for _, s := range cands {
			labels = append(labels, s.Label)
		}
		return strings.Join(labels, "  ")
	}
	fmt.Fprintf(c.out, "\n  Probable: %s\n", join(p.Probable))
	fmt.Fprintf(c.out, "  Possible: %s\n\n", join(p.Possible))
}

// PrintMomentum imprime la presión minuto a minuto. Los minutos sin
// actividad de ningún lado se omiten.
func (c *Console) PrintMomentum(m analyzer.Momentum) {
	fmt.Fprintf(c.out, "\n=== MOMENTUM #%d (%s, %d min) ===\n", m.FixtureID, m.State, len(m.Minutes))

	table := tablewriter.NewWriter(c.out)
	table.Header("Min", "Home", "Away", "Shots H/A", "Corners H/A")
	active := 0
	for _, p := range m.Minutes {
		if p.Home.Pressure == 0 && p.Away.Pressure == 0 {
			continue
		}
		active++
		table.Append(
			fmt.Sprintf("%d'", p.Minute),
			pressureBar(p.Home.Pressure),
			pressureBar(p.Away.Pressure),
			fmt.Sprintf("%d/%d", p.Home.CumulativeShots, p.Away.CumulativeShots),
			fmt.Sprintf("%d/%d", p.Home.CumulativeCorners, p.Away.CumulativeCorners),
		)
	}
	if active == 0 {
		fmt.Fprintln(c.out, "  no pressure recorded")
		return
	}
	table.Render()
}

// --- helpers ---

func fixtureLabel(f domain.Fixture, maxLen int) string {
	name := f.Name
	if name == "" {
		name = fmt.Sprintf("%s vs %s", teamLabel(f.Home), teamLabel(f.Away))
	}
	return truncate(name, maxLen)
}

func teamLabel(p domain.Participant) string {
	if p.Name != "" {
		return truncate(p.Name, 20)
	}
	return fmt.Sprintf("#%d", p.TeamID)
}

func marketLabel(m domain.MarketProbability) string {
	label := m.Market + " " + m.Label
	if m.Line != "" {
		label += " " + m.Line
	}
	return label
}

func windowFrequency(windows []analyzer.IntervalStat, label string) string {
	for _, w := range windows {
		if w.Label == label {
			return pct(w.Frequency)
		}
	}
	return "-"
}

func pressureBar(pressure int) string {
	return fmt.Sprintf("%3d %s", pressure, strings.Repeat("#", pressure/10))
}

func optFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func pct(v int) string {
	return fmt.Sprintf("%d%%", v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
