// Package cache provides a side cache for computed reports. Reports are
// rebuilt from the transaction log on every miss; the cache only shortcuts
// repeated reads and every write path invalidates it.
package cache

import (
	"context"
	"time"
)

// ReportCache stores JSON-encoded report payloads keyed by report name.
type ReportCache interface {
	// Get unmarshals the cached payload into dest, reporting whether the key
	// was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores the payload under key for at most ttl.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// InvalidateReports drops every cached report. Called after any write
	// that changes what reports would show. Best effort; failures are logged,
	// never propagated, since the source of truth is the database.
	InvalidateReports(ctx context.Context)
}

// NoopReportCache satisfies ReportCache without storing anything. Used when
// redis is not configured or unreachable.
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string, _ any) (bool, error) {
	return false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ any, _ time.Duration) error {
	return nil
}

func (NoopReportCache) InvalidateReports(_ context.Context) {}
