package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/mozark/roi-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{"QA AUTOMATION ROI REPORT"})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	csvRows = r.addScenarioInformation(csvRows, data)
	for _, section := range data.Sections() {
		csvRows = r.addSection(csvRows, section)
	}

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addScenarioInformation(csvRows [][]string, data *types.ReportData) [][]string {
	csvRows = append(csvRows, []string{"SCENARIO"})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Property", "Value"})
	csvRows = append(csvRows, []string{"Name", data.Scenario.Name})
	csvRows = append(csvRows, []string{"ID", data.Scenario.ID.String()})
	csvRows = append(csvRows, []string{"Created At", data.Scenario.CreatedAt.Format(time.RFC3339)})
	csvRows = append(csvRows, []string{"Industry", data.Benchmark.Name})
	csvRows = append(csvRows, []string{"Regulatory Requirements", data.Benchmark.RegulatoryRequirements})
	csvRows = append(csvRows, []string{"Test Cycles Overridden", strconv.FormatBool(data.Scenario.CyclesOverridden)})
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) addSection(csvRows [][]string, section types.Section) [][]string {
	csvRows = append(csvRows, []string{section.Title})
	csvRows = append(csvRows, []string{""})
	csvRows = append(csvRows, []string{"Metric", "Value", "Unit"})
	for _, row := range section.Rows {
		csvRows = append(csvRows, []string{row.Label, strconv.FormatFloat(row.Value, 'f', -1, 64), row.Unit})
	}
	csvRows = append(csvRows, []string{""})
	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, row := range csvRows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
