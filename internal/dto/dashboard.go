package dto

// DashboardStatsResponse summarises the whole catalogue for the
// dashboard cards: totals plus the same per-dimension breakdowns the
// report export uses, computed over every non-deleted resource.
type DashboardStatsResponse struct {
	Total        int              `json:"total"`
	Published    int              `json:"published"`
	Unpublished  int              `json:"unpublished"`
	PublishedPct int              `json:"published_pct"`
	ByPlatform   []DimensionCount `json:"by_platform"`
	ByFaculty    []DimensionCount `json:"by_faculty"`
	ByType       []DimensionCount `json:"by_type"`
	ByCycle      []DimensionCount `json:"by_cycle"`
}
