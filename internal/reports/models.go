package reports

import (
	"errors"
	"time"
)

// Format is a downloadable report format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats without an exporter
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Report is a rendered file ready to be served
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
	GeneratedAt time.Time
}
