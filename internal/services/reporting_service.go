package services

import (
	"sort"
	"strings"

	"order_manager/internal/models"
	"order_manager/internal/repository"
)

// platformMarkers map link substrings to platform labels. Evaluation order
// matters: the first matching marker wins.
var platformMarkers = []struct {
	name    string
	markers []string
}{
	{"Instagram", []string{"instagram"}},
	{"Facebook", []string{"facebook", "fb.me"}},
	{"TikTok", []string{"tiktok"}},
	{"Telegram", []string{"telegram", "t.me"}},
	{"WhatsApp", []string{"wa.me", "whatsapp"}},
	{"VK", []string{"vk.com"}},
}

type ReportingService interface {
	MonthlySummary() ([]models.MonthlySummary, error)
	PlatformBreakdown() (map[string]int, error)
	DailyCounts() ([]models.DailyCount, error)
	AccountingView(month string) (*models.AccountingView, error)
}

type reportingService struct {
	repo repository.OrderRepository
}

func NewReportingService(repo repository.OrderRepository) ReportingService {
	return &reportingService{repo: repo}
}

// MonthlySummary aggregates revenue, cost and profit per order month,
// ascending by month.
func (s *reportingService) MonthlySummary() ([]models.MonthlySummary, error) {
	orders, err := s.scan()
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*models.MonthlySummary)
	for _, order := range orders {
		summary, ok := byMonth[order.OrderMonth]
		if !ok {
			summary = &models.MonthlySummary{Month: order.OrderMonth}
			byMonth[order.OrderMonth] = summary
		}
		summary.OrderCount++
		summary.TotalRevenue = summary.TotalRevenue.Add(order.SalePrice)
		summary.TotalCost = summary.TotalCost.Add(order.CostPrice)
		summary.TotalOther = summary.TotalOther.Add(order.OtherCost)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	summaries := make([]models.MonthlySummary, 0, len(months))
	for _, month := range months {
		summary := byMonth[month]
		summary.Profit = summary.TotalRevenue.Sub(summary.TotalCost).Sub(summary.TotalOther)
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// PlatformBreakdown counts orders per social platform label.
func (s *reportingService) PlatformBreakdown() (map[string]int, error) {
	orders, err := s.scan()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, order := range orders {
		counts[DetectPlatform(order.SocialLink)]++
	}
	return counts, nil
}

// DailyCounts groups orders by the date portion of their creation timestamp,
// ascending by date.
func (s *reportingService) DailyCounts() ([]models.DailyCount, error) {
	orders, err := s.scan()
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]int)
	for _, order := range orders {
		byDate[order.OrderDate()]++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	counts := make([]models.DailyCount, 0, len(dates))
	for _, date := range dates {
		counts = append(counts, models.DailyCount{Date: date, Count: byDate[date]})
	}
	return counts, nil
}

// AccountingView returns the orders, optionally restricted to one month,
// plus the distinct sorted months of the whole store.
func (s *reportingService) AccountingView(month string) (*models.AccountingView, error) {
	orders, err := s.scan()
	if err != nil {
		return nil, err
	}

	monthSet := make(map[string]bool)
	filtered := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.OrderMonth != "" {
			monthSet[order.OrderMonth] = true
		}
		if month == "" || order.OrderMonth == month {
			filtered = append(filtered, order)
		}
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	return &models.AccountingView{
		Orders:        filtered,
		Months:        months,
		SelectedMonth: month,
	}, nil
}

func (s *reportingService) scan() ([]models.Order, error) {
	if err := s.repo.EnsureInitialized(); err != nil {
		return nil, err
	}
	return s.repo.Scan()
}

// DetectPlatform classifies a social link into a platform label by the first
// marker it contains. A non-empty link matching no marker is "Other", an
// empty link is "Unknown".
func DetectPlatform(link string) string {
	s := strings.ToLower(link)
	if s == "" {
		return "Unknown"
	}
	for _, platform := range platformMarkers {
		for _, marker := range platform.markers {
			if strings.Contains(s, marker) {
				return platform.name
			}
		}
	}
	return "Other"
}
