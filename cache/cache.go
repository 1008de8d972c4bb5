// Package cache holds analysis results keyed by coin list and tracks their freshness.
package cache

import (
	"context"
	"strings"
	"time"

	"cryptomaster/models"
)

const DefaultStaleTime = 15 * time.Minute

type Entry struct {
	Result    *models.AnalysisResult `json:"result"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Cache stores the last analysis result per key. A missing key is stale.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, value *models.AnalysisResult, at time.Time) error
	IsStale(ctx context.Context, key string) (bool, error)
}

// Key builds the cache key for a coin list. Order is significant.
func Key(coins []string) string {
	return "aiAnalysis:" + strings.Join(coins, ",")
}

func isStale(e Entry, now time.Time, staleTime time.Duration) bool {
	return e.UpdatedAt.IsZero() || now.Sub(e.UpdatedAt) >= staleTime
}
