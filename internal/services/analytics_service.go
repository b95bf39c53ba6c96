package services

import (
	"context"
	"time"

	"fintrack/internal/analytics"
)

// analyticsService adapts the aggregation engine to the service layer.
type analyticsService struct {
	engine *analytics.Engine
}

// NewAnalyticsService creates a new AnalyticsServicer backed by engine.
func NewAnalyticsService(engine *analytics.Engine) AnalyticsServicer {
	return &analyticsService{engine: engine}
}

func (s *analyticsService) GetMonthlySummary(ctx context.Context, userID string, month, year int) (*analytics.MonthlySummary, error) {
	return s.engine.ComputeMonthlySummary(ctx, userID, month, year)
}

func (s *analyticsService) GetDashboard(ctx context.Context, userID string) (*analytics.DashboardSnapshot, error) {
	return s.engine.ComputeDashboardSnapshot(ctx, userID)
}

func (s *analyticsService) GetReportSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*analytics.ReportSummary, error) {
	return s.engine.ComputeReportSummary(ctx, userID, startDate, endDate)
}
