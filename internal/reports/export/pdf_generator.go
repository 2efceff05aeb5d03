package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a document as a paginated A4 report
type PDFExporter struct {
	options PDFOptions
}

// PDFOptions configures PDF generation
type PDFOptions struct {
	PageSize       string // A4, Letter, Legal
	Orientation    string // portrait, landscape
	DateFormat     string
	HeaderColor    PDFColor
	AlternateColor PDFColor
	FontFamily     string
	FontSize       float64
	HeaderFontSize float64
	TitleFontSize  float64
	Margins        PDFMargins
}

// PDFColor represents an RGB color
type PDFColor struct {
	R, G, B int
}

// PDFMargins represents page margins
type PDFMargins struct {
	Left, Right, Top, Bottom float64
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:       "A4",
		Orientation:    "landscape",
		DateFormat:     "2006-01-02 15:04 MST",
		HeaderColor:    PDFColor{R: 31, G: 111, B: 67},
		AlternateColor: PDFColor{R: 242, G: 242, B: 242},
		FontFamily:     "Arial",
		FontSize:       9,
		HeaderFontSize: 10,
		TitleFontSize:  16,
		Margins:        PDFMargins{Left: 15, Right: 15, Top: 20, Bottom: 20},
	}
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter(options PDFOptions) *PDFExporter {
	return &PDFExporter{options: options}
}

func (e *PDFExporter) ContentType() string { return "application/pdf" }
func (e *PDFExporter) Extension() string   { return "pdf" }

// Export renders the title block, summary and every table
func (e *PDFExporter) Export(w io.Writer, doc Document) error {
	orientation := "P"
	if e.options.Orientation == "landscape" {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", e.options.PageSize, "")
	pdf.SetMargins(e.options.Margins.Left, e.options.Margins.Top, e.options.Margins.Right)
	pdf.SetAutoPageBreak(true, e.options.Margins.Bottom)
	pdf.SetTitle(doc.Title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(e.options.FontFamily, "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	e.addTitle(pdf, doc)
	if len(doc.Summary) > 0 {
		e.addSummary(pdf, doc.Summary)
	}
	for _, table := range doc.Tables {
		e.addTable(pdf, table)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

func (e *PDFExporter) addTitle(pdf *gofpdf.Fpdf, doc Document) {
	pdf.SetFont(e.options.FontFamily, "B", e.options.TitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")

	if doc.Subtitle != "" {
		pdf.SetFont(e.options.FontFamily, "", e.options.FontSize+2)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 8, doc.Subtitle, "", 1, "C", false, 0, "")
	}

	pdf.SetFont(e.options.FontFamily, "", e.options.FontSize-1)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Generated: "+doc.GeneratedAt.Format(e.options.DateFormat), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addSummary(pdf *gofpdf.Fpdf, items []SummaryItem) {
	pdf.SetFont(e.options.FontFamily, "B", e.options.FontSize+2)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	for _, item := range items {
		pdf.SetFont(e.options.FontFamily, "B", e.options.FontSize)
		pdf.CellFormat(60, 6, item.Label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
		pdf.CellFormat(0, 6, formatValue(item.Value, e.options.DateFormat), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addTable(pdf *gofpdf.Fpdf, table Table) {
	pdf.SetFont(e.options.FontFamily, "B", e.options.FontSize+2)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, table.Name, "", 1, "L", false, 0, "")

	widths := e.columnWidths(pdf, table)
	e.addTableHeader(pdf, table, widths)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
	for i, row := range table.Rows {
		if pdf.GetY()+7 > pageHeight-e.options.Margins.Bottom {
			pdf.AddPage()
			e.addTableHeader(pdf, table, widths)
			pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
		}

		if i%2 == 1 {
			pdf.SetFillColor(e.options.AlternateColor.R, e.options.AlternateColor.G, e.options.AlternateColor.B)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetTextColor(0, 0, 0)

		for j, col := range table.Columns {
			val := fitText(pdf, formatValue(row[col.Key], e.options.DateFormat), widths[j]-2)
			pdf.CellFormat(widths[j], 7, val, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addTableHeader(pdf *gofpdf.Fpdf, table Table, widths []float64) {
	pdf.SetFont(e.options.FontFamily, "B", e.options.HeaderFontSize)
	pdf.SetFillColor(e.options.HeaderColor.R, e.options.HeaderColor.G, e.options.HeaderColor.B)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range table.Labels() {
		pdf.CellFormat(widths[i], 8, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// columnWidths sizes columns to their widest content, scaled down to the page
func (e *PDFExporter) columnWidths(pdf *gofpdf.Fpdf, table Table) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - e.options.Margins.Left - e.options.Margins.Right

	widths := make([]float64, len(table.Columns))
	pdf.SetFont(e.options.FontFamily, "B", e.options.HeaderFontSize)
	for i, label := range table.Labels() {
		widths[i] = pdf.GetStringWidth(label) + 4
	}
	pdf.SetFont(e.options.FontFamily, "", e.options.FontSize)
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			widths[i] = max(widths[i], pdf.GetStringWidth(formatValue(row[col.Key], e.options.DateFormat))+4)
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

// fitText truncates s with an ellipsis until it fits width
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
