package xlsx

import (
	"fmt"
	"time"

	"github.com/mozark/roi-planner/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

const sheetName = "ROI Report"

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := &sheetWriter{file: f, row: 1}
	w.title("QA Automation ROI Report", bold)
	w.pair("Generated", fmt.Sprintf("%s at %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime))
	w.skip()

	w.title("Scenario", bold)
	w.pair("Name", data.Scenario.Name)
	w.pair("ID", data.Scenario.ID.String())
	w.pair("Created At", data.Scenario.CreatedAt.Format(time.RFC3339))
	w.pair("Industry", data.Benchmark.Name)
	w.pair("Regulatory Requirements", data.Benchmark.RegulatoryRequirements)
	w.pair("Test Cycles Overridden", data.Scenario.CyclesOverridden)
	w.skip()

	for _, section := range data.Sections() {
		w.title(section.Title, bold)
		w.header(bold, "Metric", "Value", "Unit")
		for _, row := range section.Rows {
			w.values(row.Label, row.Value, row.Unit)
		}
		w.skip()
	}
	if w.err != nil {
		return nil, fmt.Errorf("failed to write report sheet: %w", w.err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "C", 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to the report sheet and keeps the first error.
type sheetWriter struct {
	file *excelize.File
	row  int
	err  error
}

func (w *sheetWriter) values(values ...any) {
	if w.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.file.SetCellValue(sheetName, cell, v); err != nil {
			w.err = err
			return
		}
	}
	w.row++
}

func (w *sheetWriter) styled(style int, values ...any) {
	row := w.row
	w.values(values...)
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	w.err = w.file.SetCellStyle(sheetName, first, last, style)
}

func (w *sheetWriter) title(text string, style int) {
	w.styled(style, text)
}

func (w *sheetWriter) header(style int, labels ...string) {
	values := make([]any, len(labels))
	for i, l := range labels {
		values[i] = l
	}
	w.styled(style, values...)
}

func (w *sheetWriter) pair(label string, value any) {
	w.values(label, value)
}

func (w *sheetWriter) skip() {
	w.row++
}
