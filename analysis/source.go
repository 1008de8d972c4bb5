// Package analysis produces market sentiment, price predictions, news impact
// and social sentiment, and aggregates them into a single analysis result.
package analysis

import (
	"context"
	"errors"

	"cryptomaster/models"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

// DefaultCoins is used when an analysis is requested without coins.
var DefaultCoins = []string{"BTC", "ETH", "SOL", "ADA", "BNB"}

// Source is a provider of the four analysis inputs. Implementations must be
// safe for concurrent use; the aggregator requests predictions in parallel.
type Source interface {
	FetchSentiment(ctx context.Context, coins []string) (models.MarketSentiment, error)
	FetchPrediction(ctx context.Context, coin string, tf models.Timeframe) (models.AIPrediction, error)
	FetchNews(ctx context.Context) ([]models.NewsImpact, error)
	FetchSocialSentiment(ctx context.Context, coins []string) (map[string]float64, error)
}

// ClassifySentiment buckets a score in [-1,1].
func ClassifySentiment(score float64) models.SentimentClass {
	if score >= 0.2 {
		return models.SentimentPositive
	}
	if score <= -0.2 {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}
