package dto

import "github.com/utec-virtual/recursos-api/internal/models"

// FilterAny is the sentinel meaning "do not constrain this dimension".
const FilterAny = "todos"

// Published-state filter values beyond the sentinel.
const (
	FilterPublished   = "publicados"
	FilterUnpublished = "no-publicados"
)

// ReportFilter is the five-dimension filter specification for report
// exports. Empty values are equivalent to the sentinel.
type ReportFilter struct {
	Platform  string `json:"plataforma"`
	Faculty   string `json:"facultad"`
	Cycle     string `json:"ciclo"`
	Type      string `json:"tipo"`
	Published string `json:"publicado"`
}

// ExportFormat selects the rendered artifact type.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
	FormatCSV  ExportFormat = "csv"
)

// ExportRequest captures POST /reports/export. The caller supplies the
// already-materialized resource collection along with the filter spec.
type ExportRequest struct {
	Resources []models.Resource `json:"resources"`
	Filters   ReportFilter      `json:"filters"`
	Format    ExportFormat      `json:"format,omitempty"`
}

// DimensionCount is one row of a per-dimension breakdown.
type DimensionCount struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ReportStats aggregates the filtered resource set.
type ReportStats struct {
	Total        int              `json:"total"`
	Published    int              `json:"published"`
	Unpublished  int              `json:"unpublished"`
	PublishedPct int              `json:"published_pct"`
	ByPlatform   []DimensionCount `json:"by_platform"`
	ByFaculty    []DimensionCount `json:"by_faculty"`
	ByType       []DimensionCount `json:"by_type"`
	ByCycle      []DimensionCount `json:"by_cycle"`
}
