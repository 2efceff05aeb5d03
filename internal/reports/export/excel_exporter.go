package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// ExcelExporter writes a workbook with a summary sheet and one sheet per table
type ExcelExporter struct {
	options ExcelOptions
}

// ExcelOptions configures Excel export behavior
type ExcelOptions struct {
	FreezeHeader bool
	AutoFilter   bool
	NumberFormat string
	HeaderStyle  *ExcelStyleConfig
	DataStyle    *ExcelStyleConfig
}

// ExcelStyleConfig defines style for cells
type ExcelStyleConfig struct {
	FontBold  bool
	FontSize  int
	FontColor string
	FillColor string
	Alignment string // left, center, right
	Border    bool
	WrapText  bool
}

// DefaultExcelOptions returns default Excel export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		FreezeHeader: true,
		AutoFilter:   true,
		NumberFormat: "#,##0.##",
		HeaderStyle: &ExcelStyleConfig{
			FontBold:  true,
			FontSize:  11,
			FillColor: "1F6F43",
			FontColor: "FFFFFF",
			Alignment: "center",
			Border:    true,
		},
		DataStyle: &ExcelStyleConfig{
			FontSize:  11,
			Alignment: "left",
			Border:    true,
			WrapText:  true,
		},
	}
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	return &ExcelExporter{options: options}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string { return "xlsx" }

// Export builds the workbook in memory and writes it to w
func (e *ExcelExporter) Export(w io.Writer, doc Document) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := e.writeSummary(file, doc); err != nil {
		return err
	}

	for _, table := range doc.Tables {
		if _, err := file.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}
		if err := e.writeTable(file, table); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", table.Name, err)
		}
	}

	return file.Write(w)
}

func (e *ExcelExporter) writeSummary(file *excelize.File, doc Document) error {
	rows := [][]any{
		{doc.Title},
		{"Generated", doc.GeneratedAt.Format(time.RFC3339)},
	}
	if doc.Subtitle != "" {
		rows = append(rows, []any{doc.Subtitle})
	}
	for _, item := range doc.Summary {
		rows = append(rows, []any{item.Label, item.Value})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return file.SetColWidth(summarySheet, "A", "B", 32)
}

func (e *ExcelExporter) writeTable(file *excelize.File, table Table) error {
	sheet := table.Name

	headerStyle, err := e.createStyle(file, e.options.HeaderStyle)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	dataStyle, err := e.createStyle(file, e.options.DataStyle)
	if err != nil {
		return fmt.Errorf("failed to create data style: %w", err)
	}
	numberStyle := dataStyle
	if e.options.NumberFormat != "" {
		numberStyle, err = file.NewStyle(&excelize.Style{CustomNumFmt: &e.options.NumberFormat})
		if err != nil {
			return fmt.Errorf("failed to create number style: %w", err)
		}
	}

	widths := make([]float64, len(table.Columns))
	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, col.Label); err != nil {
			return err
		}
		if headerStyle > 0 {
			_ = file.SetCellStyle(sheet, cell, cell, headerStyle)
		}
		widths[i] = estimateWidth(col.Label)
	}

	for r, row := range table.Rows {
		for i, col := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			val := row[col.Key]
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
			style := dataStyle
			switch val.(type) {
			case int, int64, float64:
				style = numberStyle
			}
			if style > 0 {
				_ = file.SetCellStyle(sheet, cell, cell, style)
			}
			widths[i] = max(widths[i], estimateWidth(val))
		}
	}

	for i, width := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := file.SetColWidth(sheet, name, name, min(max(width, 10), 50)); err != nil {
			return err
		}
	}

	if e.options.FreezeHeader {
		if err := file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}
	if e.options.AutoFilter && len(table.Rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), len(table.Rows)+1)
		if err := file.AutoFilter(sheet, "A1:"+last, nil); err != nil {
			return err
		}
	}
	return nil
}

// createStyle returns 0 when config is nil
func (e *ExcelExporter) createStyle(file *excelize.File, config *ExcelStyleConfig) (int, error) {
	if config == nil {
		return 0, nil
	}

	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:  config.FontBold,
			Size:  float64(config.FontSize),
			Color: config.FontColor,
		},
	}
	if config.FillColor != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{config.FillColor}}
	}
	if config.Alignment != "" || config.WrapText {
		style.Alignment = &excelize.Alignment{
			Horizontal: config.Alignment,
			WrapText:   config.WrapText,
		}
	}
	if config.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	return file.NewStyle(style)
}

// estimateWidth is a rough character count plus padding
func estimateWidth(val any) float64 {
	if val == nil {
		return 0
	}
	return float64(len(fmt.Sprintf("%v", val))) * 1.2
}
