package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cryptomaster/analysis"
	"cryptomaster/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Runner produces a fresh analysis for coins.
type Runner interface {
	Run(ctx context.Context, coins []string) (*models.AnalysisResult, error)
}

// State is what a page needs to render an analysis view.
type State struct {
	Coins       []string               `json:"coins"`
	Result      *models.AnalysisResult `json:"result"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Stale       bool                   `json:"stale"`
	Running     bool                   `json:"running"`
	Err         string                 `json:"error,omitempty"`
	LastUpdated string                 `json:"last_updated"`
}

// ErrKeyRunFailed is the translation key stored in the error slot when a run
// fails. Pages render it through the active localizer.
const ErrKeyRunFailed = "analysisFailed"

// Query fronts a Runner with a Cache. Reading never triggers a run; data is
// only produced by Run or by Refetch when the entry is stale.
type Query struct {
	cache  Cache
	runner Runner
	now    func() time.Time
	logger zerolog.Logger

	mu      sync.Mutex
	running map[string]int
	errs    map[string]string
}

func NewQuery(c Cache, runner Runner) *Query {
	return &Query{
		cache:   c,
		runner:  runner,
		now:     time.Now,
		logger:  log.With().Str("component", "analysis_query").Logger(),
		running: make(map[string]int),
		errs:    make(map[string]string),
	}
}

func (q *Query) Snapshot(ctx context.Context, coins []string) State {
	coins = analysis.NormalizeCoins(coins)
	key := Key(coins)

	st := State{Coins: coins, Stale: true}

	entry, ok, err := q.cache.Get(ctx, key)
	if err != nil {
		q.logger.Error().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		st.Result = entry.Result
		st.UpdatedAt = entry.UpdatedAt
	}
	if stale, err := q.cache.IsStale(ctx, key); err == nil {
		st.Stale = stale
	}

	q.mu.Lock()
	st.Running = q.running[key] > 0
	st.Err = q.errs[key]
	q.mu.Unlock()

	st.LastUpdated = LastUpdated(st.UpdatedAt, q.now())
	return st
}

// Run produces a new analysis and overwrites the cache entry. On failure the
// previous entry is left untouched and a generic error is recorded.
func (q *Query) Run(ctx context.Context, coins []string) (*models.AnalysisResult, error) {
	coins = analysis.NormalizeCoins(coins)
	key := Key(coins)

	q.mu.Lock()
	q.running[key]++
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		if q.running[key]--; q.running[key] <= 0 {
			delete(q.running, key)
		}
		q.mu.Unlock()
	}()

	res, err := q.runner.Run(ctx, coins)
	if err != nil {
		q.logger.Error().Err(err).Str("key", key).Msg("Error running AI analysis")
		q.setErr(key, ErrKeyRunFailed)
		return nil, fmt.Errorf("run analysis: %w", err)
	}

	if err := q.cache.Set(ctx, key, res, q.now()); err != nil {
		q.logger.Error().Err(err).Str("key", key).Msg("cache write failed")
		q.setErr(key, ErrKeyRunFailed)
		return res, fmt.Errorf("store analysis: %w", err)
	}

	q.setErr(key, "")
	return res, nil
}

// Refetch runs only when the cached entry is stale.
func (q *Query) Refetch(ctx context.Context, coins []string) (*models.AnalysisResult, error) {
	coins = analysis.NormalizeCoins(coins)
	key := Key(coins)

	stale, err := q.cache.IsStale(ctx, key)
	if err == nil && !stale {
		entry, ok, err := q.cache.Get(ctx, key)
		if err == nil && ok {
			return entry.Result, nil
		}
	}
	return q.Run(ctx, coins)
}

func (q *Query) setErr(key, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if msg == "" {
		delete(q.errs, key)
		return
	}
	q.errs[key] = msg
}

// LastUpdated renders the age of an entry for display.
func LastUpdated(updatedAt, now time.Time) string {
	if updatedAt.IsZero() {
		return "Never"
	}

	minutes := int(now.Sub(updatedAt) / time.Minute)
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	return updatedAt.Local().Format("2006-01-02 15:04")
}
