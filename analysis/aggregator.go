package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cryptomaster/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Aggregator runs all producers of a Source and assembles an AnalysisResult.
type Aggregator struct {
	source    Source
	timeframe models.Timeframe
	logger    zerolog.Logger
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{
		source:    source,
		timeframe: models.Timeframe7d,
		logger:    log.With().Str("component", "analysis").Logger(),
	}
}

// NormalizeCoins trims and upper-cases symbols, dropping empty entries.
// An empty list yields DefaultCoins.
func NormalizeCoins(coins []string) []string {
	out := make([]string, 0, len(coins))
	for _, c := range coins {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultCoins...)
	}
	return out
}

// Run fails as a whole if any producer fails; there are no partial results.
func (a *Aggregator) Run(ctx context.Context, coins []string) (*models.AnalysisResult, error) {
	coins = NormalizeCoins(coins)
	start := time.Now()

	sentiment, err := a.source.FetchSentiment(ctx, coins)
	if err != nil {
		return nil, fmt.Errorf("market sentiment: %w", err)
	}

	predictions := make([]models.AIPrediction, len(coins))
	g, gctx := errgroup.WithContext(ctx)
	for i, coin := range coins {
		g.Go(func() error {
			p, err := a.source.FetchPrediction(gctx, coin, a.timeframe)
			if err != nil {
				return fmt.Errorf("predict %s: %w", coin, err)
			}
			predictions[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	news, err := a.source.FetchNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("news impact: %w", err)
	}

	social, err := a.source.FetchSocialSentiment(ctx, coins)
	if err != nil {
		return nil, fmt.Errorf("social sentiment: %w", err)
	}

	a.logger.Debug().
		Strs("coins", coins).
		Dur("took", time.Since(start)).
		Float64("overall", sentiment.OverallScore).
		Msg("analysis completed")

	return &models.AnalysisResult{
		RunID:           uuid.NewString(),
		Coins:           coins,
		MarketSentiment: sentiment,
		Predictions:     predictions,
		NewsImpact:      news,
		SocialSentiment: social,
		GeneratedAt:     time.Now(),
	}, nil
}

// Predict returns a single prediction for coin over tf.
func (a *Aggregator) Predict(ctx context.Context, coin string, tf models.Timeframe) (models.AIPrediction, error) {
	return a.source.FetchPrediction(ctx, strings.ToUpper(strings.TrimSpace(coin)), tf)
}
