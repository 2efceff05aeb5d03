package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVExporter writes every table of a document to one CSV stream. Tables
// after the first are separated by a blank record and a name record.
type CSVExporter struct {
	options CSVOptions
}

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	Delimiter       rune
	UseCRLF         bool
	IncludeHeader   bool
	TimestampFormat string
}

// DefaultCSVOptions returns default CSV export options
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:       ',',
		IncludeHeader:   true,
		TimestampFormat: time.RFC3339,
	}
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(options CSVOptions) *CSVExporter {
	return &CSVExporter{options: options}
}

func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }
func (e *CSVExporter) Extension() string   { return "csv" }

// Export writes the document tables; the summary is not part of CSV output
func (e *CSVExporter) Export(w io.Writer, doc Document) error {
	writer := csv.NewWriter(w)
	writer.Comma = e.options.Delimiter
	writer.UseCRLF = e.options.UseCRLF

	for i, table := range doc.Tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
			if err := writer.Write([]string{table.Name}); err != nil {
				return fmt.Errorf("failed to write table name: %w", err)
			}
		}
		if err := e.writeTable(writer, table); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (e *CSVExporter) writeTable(writer *csv.Writer, table Table) error {
	if e.options.IncludeHeader {
		if err := writer.Write(table.Labels()); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = formatValue(row[col.Key], e.options.TimestampFormat)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
