package export

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Column describes one table column: Key selects the row value, Label is shown
type Column struct {
	Key   string
	Label string
}

// Table is a titled set of rows keyed by column
type Table struct {
	Name    string
	Columns []Column
	Rows    []map[string]any
}

// Labels returns the column labels in order
func (t Table) Labels() []string {
	labels := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
	}
	return labels
}

// SummaryItem is a label/value pair shown above the tables
type SummaryItem struct {
	Label string
	Value any
}

// Document is everything an exporter renders
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Summary     []SummaryItem
	Tables      []Table
}

// Exporter renders a document in one file format
type Exporter interface {
	Export(w io.Writer, doc Document) error
	ContentType() string
	Extension() string
}

// formatValue renders a cell for the text-based formats
func formatValue(val any, dateFormat string) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(dateFormat)
	default:
		return fmt.Sprintf("%v", v)
	}
}
