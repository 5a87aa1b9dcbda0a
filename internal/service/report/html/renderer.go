package html

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/mozark/roi-planner/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

type reportTemplateData struct {
	GeneratedDate          string
	GeneratedTime          string
	ScenarioName           string
	ScenarioID             string
	CreatedAt              string
	Industry               string
	RegulatoryRequirements string
	CyclesOverridden       bool
	TotalAnnualSavings     string
	Sections               []types.Section
}

func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"number": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
	return &Renderer{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(htmlReportTemplate)),
	}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	templateData := reportTemplateData{
		GeneratedDate:          data.Timestamps.Generated,
		GeneratedTime:          data.Timestamps.GeneratedTime,
		ScenarioName:           data.Scenario.Name,
		ScenarioID:             data.Scenario.ID.String(),
		CreatedAt:              data.Scenario.CreatedAt.Format(time.RFC3339),
		Industry:               data.Benchmark.Name,
		RegulatoryRequirements: data.Benchmark.RegulatoryRequirements,
		CyclesOverridden:       data.Scenario.CyclesOverridden,
		TotalAnnualSavings:     strconv.FormatFloat(data.Results.TotalAnnualSavings, 'f', 0, 64),
		Sections:               data.Sections(),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, templateData); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}
	return buf.Bytes(), nil
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>QA Automation ROI Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
        .header { border-bottom: 3px solid #2c3e50; padding-bottom: 10px; }
        .highlight { font-size: 2em; color: #27ae60; margin: 20px 0; }
        table { border-collapse: collapse; width: 100%; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background: #2c3e50; color: #fff; }
    </style>
</head>
<body>
    <div class="header">
        <h1>QA Automation ROI Report</h1>
        <p>Generated: {{.GeneratedDate}} at {{.GeneratedTime}}</p>
    </div>

    <h2>{{.ScenarioName}}</h2>
    <table>
        <tr><th>Property</th><th>Value</th></tr>
        <tr><td>ID</td><td>{{.ScenarioID}}</td></tr>
        <tr><td>Created At</td><td>{{.CreatedAt}}</td></tr>
        <tr><td>Industry</td><td>{{.Industry}}</td></tr>
        <tr><td>Regulatory Requirements</td><td>{{.RegulatoryRequirements}}</td></tr>
        <tr><td>Test Cycles Overridden</td><td>{{.CyclesOverridden}}</td></tr>
    </table>

    <div class="highlight">Total annual savings: {{.TotalAnnualSavings}} USD</div>
{{range .Sections}}
    <h3>{{.Title}}</h3>
    <table>
        <tr><th>Metric</th><th>Value</th><th>Unit</th></tr>
        {{- range .Rows}}
        <tr><td>{{.Label}}</td><td>{{number .Value}}</td><td>{{.Unit}}</td></tr>
        {{- end}}
    </table>
{{end}}
</body>
</html>
`
