package service

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/utec-virtual/recursos-api/internal/dto"
	"github.com/utec-virtual/recursos-api/internal/models"
	appErrors "github.com/utec-virtual/recursos-api/pkg/errors"
	"github.com/utec-virtual/recursos-api/pkg/export"
)

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ReportBranding is the banner text printed at the top of every
// exported report.
type ReportBranding struct {
	Institution string
	OrgUnit     string
	Title       string
}

// ReportService filters a resource collection, aggregates it and
// renders the report document in the requested format.
type ReportService struct {
	xlsx     documentRenderer
	pdf      documentRenderer
	csv      documentRenderer
	branding ReportBranding
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs a ReportService instance.
func NewReportService(xlsx, pdf, csv documentRenderer, branding ReportBranding, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{xlsx: xlsx, pdf: pdf, csv: csv, branding: branding, logger: logger, now: time.Now}
}

func matchesDimension(filter, value string) bool {
	return filter == "" || filter == dto.FilterAny || filter == value
}

func matchesPublished(filter string, published bool) bool {
	switch filter {
	case dto.FilterPublished:
		return published
	case dto.FilterUnpublished:
		return !published
	default:
		return true
	}
}

// Filter returns the resources matching every non-sentinel dimension
// of the filter. An empty dimension means no constraint on it.
func (s *ReportService) Filter(resources []models.Resource, filter dto.ReportFilter) []models.Resource {
	out := make([]models.Resource, 0, len(resources))
	for _, r := range resources {
		if !matchesDimension(filter.Platform, r.Platform) {
			continue
		}
		if !matchesDimension(filter.Faculty, r.Faculty) {
			continue
		}
		if !matchesDimension(filter.Cycle, r.Cycle) {
			continue
		}
		if !matchesDimension(filter.Type, r.Type) {
			continue
		}
		if !matchesPublished(filter.Published, r.Published) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func countByDimension(resources []models.Resource, pick func(models.Resource) string) []dto.DimensionCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range resources {
		value := pick(r)
		if _, seen := counts[value]; !seen {
			order = append(order, value)
		}
		counts[value]++
	}

	out := make([]dto.DimensionCount, 0, len(order))
	for _, value := range order {
		out = append(out, dto.DimensionCount{
			Value:      value,
			Count:      counts[value],
			Percentage: percentage(counts[value], len(resources)),
		})
	}
	return out
}

// Aggregate computes totals and per-dimension breakdowns. Breakdowns
// keep the order in which values first appear in the input.
func (s *ReportService) Aggregate(resources []models.Resource) dto.ReportStats {
	stats := dto.ReportStats{Total: len(resources)}
	for _, r := range resources {
		if r.Published {
			stats.Published++
		}
	}
	stats.Unpublished = stats.Total - stats.Published
	stats.PublishedPct = percentage(stats.Published, stats.Total)

	stats.ByPlatform = countByDimension(resources, func(r models.Resource) string { return r.Platform })
	stats.ByFaculty = countByDimension(resources, func(r models.Resource) string { return r.Faculty })
	stats.ByType = countByDimension(resources, func(r models.Resource) string { return r.Type })
	stats.ByCycle = countByDimension(resources, func(r models.Resource) string { return r.Cycle })
	return stats
}

func publishedLabel(published bool) string {
	if published {
		return "Sí"
	}
	return "No"
}

func appliedFilters(filter dto.ReportFilter) []export.KV {
	var out []export.KV
	add := func(label, value string) {
		if value != "" && value != dto.FilterAny {
			out = append(out, export.KV{Key: label, Value: value})
		}
	}
	add("Plataforma", filter.Platform)
	add("Facultad", filter.Faculty)
	add("Ciclo", filter.Cycle)
	add("Tipo", filter.Type)
	add("Publicado", filter.Published)
	return out
}

func dimensionBlock(title, label string, counts []dto.DimensionCount) export.Block {
	block := export.Block{
		Title:   title,
		Headers: []string{label, "Cantidad", "Porcentaje"},
		Rows:    make([][]string, 0, len(counts)),
	}
	for _, c := range counts {
		block.Rows = append(block.Rows, []string{c.Value, fmt.Sprintf("%d", c.Count), fmt.Sprintf("%d%%", c.Percentage)})
	}
	return block
}

// BuildDocument lays out the full report: banner, generation metadata,
// applied filters, statistics summary, the resource detail table and
// the four dimension breakdowns. An empty resource set still produces
// every block, with zeros.
func (s *ReportService) BuildDocument(resources []models.Resource, filter dto.ReportFilter, generatedBy string) export.Document {
	now := s.now()
	stats := s.Aggregate(resources)

	doc := export.Document{
		Banner: []string{
			s.branding.Institution,
			s.branding.OrgUnit,
			fmt.Sprintf("%s %d", s.branding.Title, now.Year()),
		},
		Meta: []export.KV{
			{Key: "Fecha de generación", Value: now.Format("2006-01-02")},
			{Key: "Hora de generación", Value: now.Format("15:04:05")},
			{Key: "Generado por", Value: generatedBy},
		},
		Filters:     appliedFilters(filter),
		GeneratedAt: now,
	}

	summary := export.Block{
		Title:   "Resumen",
		Headers: []string{"Indicador", "Valor"},
		Rows: [][]string{
			{"Total de recursos", fmt.Sprintf("%d", stats.Total)},
			{"Publicados", fmt.Sprintf("%d", stats.Published)},
			{"No publicados", fmt.Sprintf("%d", stats.Unpublished)},
			{"Porcentaje publicado", fmt.Sprintf("%d%%", stats.PublishedPct)},
		},
	}

	detail := export.Block{
		Title: "Detalle de recursos",
		Headers: []string{
			"Nombre", "URL", "Tipo", "Plataforma", "Asignatura",
			"Ciclo", "Facultad", "Docente", "Publicado", "Fecha de Creación",
		},
		Rows: make([][]string, 0, len(resources)),
	}
	for _, r := range resources {
		detail.Rows = append(detail.Rows, []string{
			r.Title, r.URL, r.Type, r.Platform, r.Subject,
			r.Cycle, r.Faculty, r.OwnerName, publishedLabel(r.Published),
			r.CreatedAt.Format("2006-01-02"),
		})
	}

	doc.Blocks = []export.Block{
		summary,
		detail,
		dimensionBlock("Recursos por plataforma", "Plataforma", stats.ByPlatform),
		dimensionBlock("Recursos por facultad", "Facultad", stats.ByFaculty),
		dimensionBlock("Recursos por tipo", "Tipo", stats.ByType),
		dimensionBlock("Recursos por ciclo", "Ciclo", stats.ByCycle),
	}
	return doc
}

// ExportArtifact is a rendered report ready to send.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Export filters the supplied collection, builds the document and
// renders it in the requested format (xlsx when unspecified).
func (s *ReportService) Export(req dto.ExportRequest, generatedBy string) (*ExportArtifact, error) {
	format := req.Format
	if format == "" {
		format = dto.FormatXLSX
	}

	filtered := s.Filter(req.Resources, req.Filters)
	doc := s.BuildDocument(filtered, req.Filters, generatedBy)

	var (
		renderer    documentRenderer
		ext         string
		contentType string
	)
	switch format {
	case dto.FormatXLSX:
		renderer, ext, contentType = s.xlsx, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case dto.FormatPDF:
		renderer, ext, contentType = s.pdf, "pdf", "application/pdf"
	case dto.FormatCSV:
		renderer, ext, contentType = s.csv, "csv", "text/csv"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("formato no soportado: %s", format))
	}

	content, err := renderer.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	return &ExportArtifact{
		Filename:    fmt.Sprintf("reporte_recursos_%s.%s", doc.GeneratedAt.Format("2006-01-02"), ext),
		ContentType: contentType,
		Content:     content,
	}, nil
}
