package models

// EnquiryStats is the multi-facet count summary over the whole collection.
// Enum values with zero occurrences are absent from the maps.
type EnquiryStats struct {
	Total      int                     `json:"total"`
	Today      int                     `json:"today"`
	ThisWeek   int                     `json:"this_week"`
	ThisMonth  int                     `json:"this_month"`
	ByStatus   map[EnquiryStatus]int   `json:"by_status"`
	ByService  map[ServiceType]int     `json:"by_service"`
	ByPriority map[EnquiryPriority]int `json:"by_priority"`
}

// BreakdownItem is one grouped count, kept in chart-friendly form.
type BreakdownItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DashboardOverview is the landing-page payload: headline counts plus the
// five most recent enquiries in narrow projection.
type DashboardOverview struct {
	Stats struct {
		Total     int                   `json:"total"`
		Today     int                   `json:"today"`
		ByStatus  map[EnquiryStatus]int `json:"by_status"`
		ByService map[ServiceType]int   `json:"by_service"`
	} `json:"stats"`
	RecentEnquiries []EnquirySummary `json:"recent_enquiries"`
	Charts          struct {
		StatusBreakdown  []BreakdownItem `json:"status_breakdown"`
		ServiceBreakdown []BreakdownItem `json:"service_breakdown"`
	} `json:"charts"`
}

// DailyCount is one calendar day of the analytics trend.
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Analytics is the period-bounded distribution view.
type Analytics struct {
	Period              string                `json:"period"`
	TotalCount          int                   `json:"total_count"`
	ServiceDistribution map[ServiceType]int   `json:"service_distribution"`
	StatusDistribution  map[EnquiryStatus]int `json:"status_distribution"`
	DailyTrend          []DailyCount          `json:"daily_trend"`
}

// MonthTotals holds one calendar month's enquiry counts.
type MonthTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// PerformanceMetrics compares the current calendar month to the previous one.
type PerformanceMetrics struct {
	CurrentMonth MonthTotals `json:"current_month"`
	Growth       struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	} `json:"growth"`
	Comparison struct {
		LastMonth MonthTotals `json:"last_month"`
	} `json:"comparison"`
}

// WeeklyReport summarizes the last seven days against the seven before them.
// It feeds the admin summary email.
type WeeklyReport struct {
	WeekStart        string          `json:"week_start"` // YYYY-MM-DD
	WeekEnd          string          `json:"week_end"`
	TotalEnquiries   int             `json:"total_enquiries"`
	Completed        int             `json:"completed"`
	Growth           int             `json:"growth"`
	ServiceBreakdown []BreakdownItem `json:"service_breakdown"`
}

// ExportResult is the JSON export payload.
type ExportResult struct {
	Count     int              `json:"count"`
	Enquiries []EnquirySummary `json:"enquiries"`
}
