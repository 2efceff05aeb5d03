package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kanishk-2/climate-action-ai/internal/climate"
	"github.com/kanishk-2/climate-action-ai/internal/reports/export"
)

// Source supplies the dashboard data a policy report is built from
type Source interface {
	LatestMetrics(ctx context.Context) (*climate.ClimateMetrics, error)
	ListPolicies(ctx context.Context) ([]climate.PolicyRecommendation, error)
	ListCredits(ctx context.Context) ([]climate.CarbonCredit, error)
}

// Service builds policy reports
type Service struct {
	source    Source
	exporters map[Format]export.Exporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a report service with the PDF, CSV and XLSX exporters
func NewService(source Source, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		exporters: map[Format]export.Exporter{
			FormatPDF:   export.NewPDFExporter(export.DefaultPDFOptions()),
			FormatCSV:   export.NewCSVExporter(export.DefaultCSVOptions()),
			FormatExcel: export.NewExcelExporter(export.DefaultExcelOptions()),
		},
		logger: logger,
		now:    time.Now,
	}
}

// PolicyReport renders the policy catalog with the current metrics and credit portfolio
func (s *Service) PolicyReport(ctx context.Context, format Format) (*Report, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	doc, err := s.policyDocument(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to export %s report: %w", format, err)
	}

	s.logger.Info("Policy report generated",
		zap.String("format", string(format)),
		zap.Int("size_bytes", buf.Len()))

	return &Report{
		Filename:    fmt.Sprintf("climate-policy-report-%s.%s", doc.GeneratedAt.Format("2006-01-02"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
		GeneratedAt: doc.GeneratedAt,
	}, nil
}

func (s *Service) policyDocument(ctx context.Context) (export.Document, error) {
	metrics, err := s.source.LatestMetrics(ctx)
	if err != nil {
		return export.Document{}, fmt.Errorf("failed to load climate metrics: %w", err)
	}
	policies, err := s.source.ListPolicies(ctx)
	if err != nil {
		return export.Document{}, fmt.Errorf("failed to load policies: %w", err)
	}
	credits, err := s.source.ListCredits(ctx)
	if err != nil {
		return export.Document{}, fmt.Errorf("failed to load carbon credits: %w", err)
	}

	return export.Document{
		Title:       "Climate Policy Recommendations Report",
		Subtitle:    "Policy catalog, current indicators and carbon credit portfolio",
		GeneratedAt: s.now(),
		Summary:     metricsSummary(metrics),
		Tables:      []export.Table{policyTable(policies), creditTable(credits)},
	}, nil
}

func metricsSummary(m *climate.ClimateMetrics) []export.SummaryItem {
	if m == nil {
		return []export.SummaryItem{{Label: "Climate metrics", Value: "No snapshot recorded"}}
	}
	return []export.SummaryItem{
		{Label: "CO2 level (ppm)", Value: m.CO2Level},
		{Label: "Temperature anomaly (C)", Value: m.Temperature},
		{Label: "Credits allocated", Value: m.CreditsAllocated},
		{Label: "Policy score", Value: m.PolicyScore},
		{Label: "Recorded at", Value: m.RecordedAt},
	}
}

func policyTable(policies []climate.PolicyRecommendation) export.Table {
	rows := make([]map[string]any, len(policies))
	for i, p := range policies {
		rows[i] = map[string]any{
			"title":              p.Title,
			"category":           p.Category,
			"priority":           string(p.Priority),
			"projectedImpact":    p.ProjectedImpact,
			"implementationCost": p.ImplementationCost,
			"timeline":           p.Timeline,
			"description":        p.Description,
		}
	}
	return export.Table{
		Name: "Policies",
		Columns: []export.Column{
			{Key: "title", Label: "Policy"},
			{Key: "category", Label: "Category"},
			{Key: "priority", Label: "Priority"},
			{Key: "projectedImpact", Label: "Projected Impact"},
			{Key: "implementationCost", Label: "Cost"},
			{Key: "timeline", Label: "Timeline"},
			{Key: "description", Label: "Description"},
		},
		Rows: rows,
	}
}

func creditTable(credits []climate.CarbonCredit) export.Table {
	rows := make([]map[string]any, len(credits))
	for i, c := range credits {
		rows[i] = map[string]any{
			"projectType":   c.ProjectType,
			"creditsAmount": c.CreditsAmount,
			"cost":          c.Cost,
			"impactLevel":   string(c.ImpactLevel),
			"description":   c.Description,
		}
	}
	return export.Table{
		Name: "Carbon Credits",
		Columns: []export.Column{
			{Key: "projectType", Label: "Project Type"},
			{Key: "creditsAmount", Label: "Credits (tons CO2e)"},
			{Key: "cost", Label: "Cost (USD)"},
			{Key: "impactLevel", Label: "Impact"},
			{Key: "description", Label: "Description"},
		},
		Rows: rows,
	}
}
