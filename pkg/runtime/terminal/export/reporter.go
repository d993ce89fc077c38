package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/bi-tools/board-pulse/pkg/models/api"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		ValueWidth: 16,
	}
}

// Reporter renders analytics results as formatted text.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}
}

const briefingTemplate = `
LEADERSHIP BRIEFING

=== Pipeline ===
Total deals: {{.Pipeline.TotalDeals}}
Open pipeline: {{.Pipeline.OpenPipelineFormatted}}
Won value: {{.Pipeline.WonValueFormatted}}
Zero-value deals: {{.Pipeline.ZeroValueDeals}}

Top sectors by open value:
{{range .Pipeline.TopSectorsByOpenValue}}  - {{.Name}}: {{.Formatted}}
{{end}}
=== Win Rate ===
{{if .WinRate.OverallWinRatePct}}Overall: {{printf "%.1f" (deref .WinRate.OverallWinRatePct)}}% (Won {{.WinRate.OverallWon}}, Dead {{.WinRate.OverallDead}})
{{else}}Overall: no resolved deals yet
{{end}}{{range .WinRate.BySector}}  - {{.Sector}}: {{printf "%.1f" .WinRatePct}}% ({{.Won}}W / {{.Dead}}D)
{{end}}
=== Billing ===
Contract value: {{.Billing.TotalContractFormatted}}
Billed: {{.Billing.TotalBilledFormatted}}
Collected: {{.Billing.TotalCollectedFormatted}}
Receivable: {{.Billing.TotalARFormatted}}
Collection efficiency: {{printf "%.1f" .Billing.CollectionEfficiencyPct}}%

=== Operations ===
Work orders: {{.Operations.TotalWorkOrders}}
Stuck projects: {{.Operations.StuckCount}}

=== Top Open Opportunities ===
{{range .TopOpenOpportunities}}  - {{.Name}} ({{.Sector}}, {{.Stage}}): {{.Value}}
{{end}}
Overdue deals: {{.OverdueDealsCount}}
At risk: {{.AtRiskCount}}
Closing within 30 days: {{.UpcomingClosures30d}}
`

// Briefing renders a leadership update as a text report.
func (c *Reporter) Briefing(update api.LeadershipUpdate) error {
	t, err := template.New("briefing").Funcs(c.funcMap()).Parse(briefingTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, update)
}

const pivotTemplate = `
{{.Chart.Title}}

{{separator}}
{{formatRow "Name" "Value"}}
{{separator}}
{{range .Chart.Data}}{{formatRow .Name (printf "%.0f" .Value)}}
{{end}}{{separator}}

Total: {{.Summary.TotalFormatted}} ({{.Summary.Unit}})
Top: {{.Summary.TopName}} at {{.Summary.TopValueFormatted}}
Records analyzed: {{.Summary.RecordCount}}
`

// Pivot renders one pivot result as a text table.
func (c *Reporter) Pivot(result api.PivotResult) error {
	t, err := template.New("pivot").Funcs(c.funcMap()).Parse(pivotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, result)
}
