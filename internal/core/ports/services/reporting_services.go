package services

import (
	"context"
	"time"

	"github.com/sitebooks/site_books_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// IncomeStatement generates an income statement for a specific period,
	// classifying expenses by description keywords.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatement, error)

	// DashboardStats computes current-month totals with change indicators
	// against the previous month.
	DashboardStats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)

	// InventoryReport values current stock and classifies availability per item.
	InventoryReport(ctx context.Context) (*domain.InventoryReport, error)

	// ProjectProgress computes spend against budget for every project.
	ProjectProgress(ctx context.Context) ([]domain.ProjectProgress, error)

	// RecentProjects lists the most recently created projects.
	RecentProjects(ctx context.Context, limit int) ([]domain.Project, error)
}
