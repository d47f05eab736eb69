package services

import (
	"context"
	"encoding/csv"
	"math"
	"sort"
	"strings"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/repository"
	"enquirydesk-backend/utils/logger"
)

// DashboardService is the statistics aggregator. Every endpoint works from a
// full table scan and counts in a single pass; at back-office volumes that is
// cheaper and simpler than maintaining counters.
type DashboardService struct {
	repo   repository.EnquiryRepositoryInterface
	logger logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo repository.EnquiryRepositoryInterface, log logger.Logger) *DashboardService {
	return &DashboardService{
		repo:   repo,
		logger: log,
	}
}

var analyticsPeriods = map[string]func(time.Time) time.Time{
	"7d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
	"30d": func(now time.Time) time.Time { return now.AddDate(0, 0, -30) },
	"3m":  func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
	"6m":  func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
	"1y":  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
}

func (s *DashboardService) GetStats(ctx context.Context) (*models.EnquiryStats, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &models.EnquiryStats{
		Total:      len(all),
		ByStatus:   make(map[models.EnquiryStatus]int),
		ByService:  make(map[models.ServiceType]int),
		ByPriority: make(map[models.EnquiryPriority]int),
	}

	for _, e := range all {
		if !e.CreatedAt.Before(startOfToday) {
			stats.Today++
		}
		if !e.CreatedAt.Before(weekAgo) {
			stats.ThisWeek++
		}
		if !e.CreatedAt.Before(startOfMonth) {
			stats.ThisMonth++
		}
		stats.ByStatus[e.Status]++
		stats.ByService[e.Service]++
		stats.ByPriority[e.Priority]++
	}

	return stats, nil
}

func (s *DashboardService) GetOverview(ctx context.Context) (*models.DashboardOverview, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	overview := &models.DashboardOverview{}
	overview.Stats.Total = len(all)
	overview.Stats.ByStatus = make(map[models.EnquiryStatus]int)
	overview.Stats.ByService = make(map[models.ServiceType]int)

	for _, e := range all {
		if !e.CreatedAt.Before(startOfToday) {
			overview.Stats.Today++
		}
		overview.Stats.ByStatus[e.Status]++
		overview.Stats.ByService[e.Service]++
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	recent := all
	if len(recent) > 5 {
		recent = recent[:5]
	}
	overview.RecentEnquiries = make([]models.EnquirySummary, 0, len(recent))
	for _, e := range recent {
		overview.RecentEnquiries = append(overview.RecentEnquiries, e.Summary())
	}

	overview.Charts.StatusBreakdown = statusBreakdown(overview.Stats.ByStatus)
	overview.Charts.ServiceBreakdown = serviceBreakdown(overview.Stats.ByService)

	return overview, nil
}

// GetAnalytics builds the distribution view for one of the supported
// periods. Unknown periods fall back to 30d.
func (s *DashboardService) GetAnalytics(ctx context.Context, period string) (*models.Analytics, error) {
	cutoffFor, ok := analyticsPeriods[period]
	if !ok {
		period = "30d"
		cutoffFor = analyticsPeriods[period]
	}

	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cutoff := cutoffFor(now)

	analytics := &models.Analytics{
		Period:              period,
		ServiceDistribution: make(map[models.ServiceType]int),
		StatusDistribution:  make(map[models.EnquiryStatus]int),
	}

	byDay := make(map[string]int)
	for _, e := range all {
		if e.CreatedAt.Before(cutoff) {
			continue
		}
		analytics.TotalCount++
		analytics.ServiceDistribution[e.Service]++
		analytics.StatusDistribution[e.Status]++
		byDay[e.CreatedAt.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	analytics.DailyTrend = make([]models.DailyCount, 0, len(days))
	for _, day := range days {
		analytics.DailyTrend = append(analytics.DailyTrend, models.DailyCount{
			Date:  day,
			Count: byDay[day],
		})
	}

	return analytics, nil
}

func (s *DashboardService) GetPerformance(ctx context.Context) (*models.PerformanceMetrics, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

	var current, last models.MonthTotals
	for _, e := range all {
		switch {
		case !e.CreatedAt.Before(startOfMonth):
			current.Total++
			if e.Status == models.EnquiryStatusCompleted {
				current.Completed++
			}
		case !e.CreatedAt.Before(startOfLastMonth):
			last.Total++
			if e.Status == models.EnquiryStatusCompleted {
				last.Completed++
			}
		}
	}

	metrics := &models.PerformanceMetrics{CurrentMonth: current}
	metrics.Growth.Total = calculateGrowth(current.Total, last.Total)
	metrics.Growth.Completed = calculateGrowth(current.Completed, last.Completed)
	metrics.Comparison.LastMonth = last

	return metrics, nil
}

// calculateGrowth is the month-over-month percentage. A zero previous month
// reports 100% growth whenever anything arrived this month, and 0% when both
// months are empty.
func calculateGrowth(current, previous int) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// GetWeeklyReport compares the rolling last seven days against the seven
// before them. The growth figure follows the same formula as the monthly
// performance view.
func (s *DashboardService) GetWeeklyReport(ctx context.Context) (*models.WeeklyReport, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	weekStart := now.AddDate(0, 0, -7)
	prevStart := now.AddDate(0, 0, -14)

	report := &models.WeeklyReport{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   now.Format("2006-01-02"),
	}

	byService := make(map[models.ServiceType]int)
	prevTotal := 0
	for _, e := range all {
		switch {
		case !e.CreatedAt.Before(weekStart):
			report.TotalEnquiries++
			byService[e.Service]++
			if e.Status == models.EnquiryStatusCompleted {
				report.Completed++
			}
		case !e.CreatedAt.Before(prevStart):
			prevTotal++
		}
	}

	report.Growth = calculateGrowth(report.TotalEnquiries, prevTotal)
	report.ServiceBreakdown = serviceBreakdown(byService)
	return report, nil
}

// ExportJSON returns up to the 100 most recent enquiries in narrow projection.
func (s *DashboardService) ExportJSON(ctx context.Context) (*models.ExportResult, error) {
	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > 100 {
		all = all[:100]
	}

	summaries := make([]models.EnquirySummary, 0, len(all))
	for _, e := range all {
		summaries = append(summaries, e.Summary())
	}

	return &models.ExportResult{
		Count:     len(summaries),
		Enquiries: summaries,
	}, nil
}

// ExportCSV renders the same recent slice as CSV for spreadsheet handoff.
func (s *DashboardService) ExportCSV(ctx context.Context) (string, error) {
	result, err := s.ExportJSON(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"ID", "Name", "Email", "Phone", "Service", "Status", "Created At"}); err != nil {
		return "", err
	}
	for _, e := range result.Enquiries {
		record := []string{
			e.ID,
			e.Name,
			e.Email,
			e.Phone,
			string(e.Service),
			string(e.Status),
			e.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func statusBreakdown(counts map[models.EnquiryStatus]int) []models.BreakdownItem {
	items := make([]models.BreakdownItem, 0, len(counts))
	for _, status := range models.ValidStatuses {
		if n, ok := counts[status]; ok {
			items = append(items, models.BreakdownItem{Key: string(status), Count: n})
		}
	}
	return items
}

func serviceBreakdown(counts map[models.ServiceType]int) []models.BreakdownItem {
	items := make([]models.BreakdownItem, 0, len(counts))
	for _, service := range models.ValidServices {
		if n, ok := counts[service]; ok {
			items = append(items, models.BreakdownItem{Key: string(service), Count: n})
		}
	}
	return items
}
