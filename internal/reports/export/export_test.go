package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() Document {
	return Document{
		Title:       "Climate Policy Recommendations Report",
		GeneratedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		Summary: []SummaryItem{
			{Label: "CO2 level (ppm)", Value: 421.3},
			{Label: "Policy score", Value: 8.4},
		},
		Tables: []Table{
			{
				Name:    "Policies",
				Columns: []Column{{Key: "title", Label: "Policy"}, {Key: "timeline", Label: "Timeline"}},
				Rows: []map[string]any{
					{"title": "Industrial Emissions Cap", "timeline": "18 months"},
					{"title": "Urban Green Spaces, phase 1", "timeline": "36 months"},
				},
			},
			{
				Name:    "Carbon Credits",
				Columns: []Column{{Key: "projectType", Label: "Project Type"}, {Key: "cost", Label: "Cost"}},
				Rows: []map[string]any{
					{"projectType": "Methane Capture", "cost": 14910.0},
				},
			},
		},
	}
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewCSVExporter(DefaultCSVOptions())

	require.NoError(t, exporter.Export(&buf, sampleDocument()))

	want := strings.Join([]string{
		"Policy,Timeline",
		"Industrial Emissions Cap,18 months",
		`"Urban Green Spaces, phase 1",36 months`,
		"",
		"Carbon Credits",
		"Project Type,Cost",
		"Methane Capture,14910",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "csv", exporter.Extension())
}

func TestCSVExporterMissingValues(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{Tables: []Table{{
		Name:    "T",
		Columns: []Column{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}},
		Rows:    []map[string]any{{"a": true}},
	}}}

	require.NoError(t, NewCSVExporter(DefaultCSVOptions()).Export(&buf, doc))

	assert.Equal(t, "A,B\nYes,\n", buf.String())
}

func TestExcelExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewExcelExporter(DefaultExcelOptions())

	require.NoError(t, exporter.Export(&buf, sampleDocument()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Policies", "Carbon Credits"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Climate Policy Recommendations Report", title)

	rows, err := f.GetRows("Policies")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Policy", "Timeline"}, rows[0])
	assert.Equal(t, "Industrial Emissions Cap", rows[1][0])

	cost, err := f.GetCellValue("Carbon Credits", "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "14910", cost)
}

func TestPDFExporter(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewPDFExporter(DefaultPDFOptions())

	require.NoError(t, exporter.Export(&buf, sampleDocument()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", exporter.ContentType())
}

func TestPDFExporterPaginatesLongTables(t *testing.T) {
	rows := make([]map[string]any, 200)
	for i := range rows {
		rows[i] = map[string]any{"n": i, "text": strings.Repeat("long cell text ", 20)}
	}
	doc := Document{
		Title:       "Long",
		GeneratedAt: time.Now(),
		Tables: []Table{{
			Name:    "Rows",
			Columns: []Column{{Key: "n", Label: "N"}, {Key: "text", Label: "Text"}},
			Rows:    rows,
		}},
	}

	var short, long bytes.Buffer
	require.NoError(t, NewPDFExporter(DefaultPDFOptions()).Export(&long, doc))
	doc.Tables[0].Rows = rows[:1]
	require.NoError(t, NewPDFExporter(DefaultPDFOptions()).Export(&short, doc))

	assert.True(t, bytes.HasPrefix(long.Bytes(), []byte("%PDF-")))
	assert.Greater(t, long.Len(), short.Len())
}
