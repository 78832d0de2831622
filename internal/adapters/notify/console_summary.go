package notify

import (
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/matchlens/internal/domain/analyzer"
)

// printSummary imprime una fila por fixture al final de un lote.
func (c *Console) printSummary(analyses []analyzer.FixtureAnalysis) {
	fmt.Fprintf(c.out, "\n=== SUMMARY (%d fixtures) ===\n", len(analyses))

	tbl := tablewriter.NewWriter(c.out)
	tbl.Header("#", "Fixture", "Kickoff", "xG", "O2.5", "BTTS", "xC", "Probable", "Value")

	totalValue := 0
	for i, a := range analyses {
		goals := a.Calculator.Goals
		probable := "-"
		if len(a.Prediction.Probable) > 0 {
			probable = a.Prediction.Probable[0].Label
		}
		kickoff := "-"
		if !a.Fixture.StartingAt.IsZero() {
			kickoff = a.Fixture.StartingAt.Format("15:04")
		}
		bets := len(a.Calculator.ValueBets())
		totalValue += bets

		tbl.Append(
			fmt.Sprintf("%d", i+1),
			fixtureLabel(a.Fixture, 32),
			kickoff,
			fmt.Sprintf("%.2f-%.2f", goals.Expected.Home, goals.Expected.Away),
			fmt.Sprintf("%.0f%%", goals.Over25.Probability),
			fmt.Sprintf("%.0f%%", goals.BTTS.Probability),
			fmt.Sprintf("%.2f", a.Calculator.Corners.Expected.Total),
			probable,
			fmt.Sprintf("%d", bets),
		)
	}
	tbl.Render()

	fmt.Fprintf(c.out, "  value bets: %d across %d fixtures\n\n", totalValue, len(analyses))
}
