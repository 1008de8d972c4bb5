package models

import "time"

type Timeframe string

const (
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

func (tf Timeframe) Valid() bool {
	switch tf {
	case Timeframe24h, Timeframe7d, Timeframe30d:
		return true
	}
	return false
}

type SentimentClass string

const (
	SentimentPositive SentimentClass = "positive"
	SentimentNegative SentimentClass = "negative"
	SentimentNeutral  SentimentClass = "neutral"
)

type SentimentSources struct {
	TechnicalAnalysis float64 `json:"technical_analysis"`
	SocialMedia       float64 `json:"social_media"`
	NewsArticles      float64 `json:"news_articles"`
}

// MarketSentiment scores range from -1 (bearish) to 1 (bullish).
type MarketSentiment struct {
	OverallScore float64          `json:"overall_score"`
	Sources      SentimentSources `json:"sources"`
	Timestamp    time.Time        `json:"timestamp"`
}

type Factor struct {
	Name        string  `json:"name"`
	Influence   float64 `json:"influence"`
	Description string  `json:"description"`
}

type AIPrediction struct {
	Coin           string    `json:"coin"`
	CurrentPrice   float64   `json:"current_price"`
	PredictedPrice float64   `json:"predicted_price"`
	Timeframe      Timeframe `json:"timeframe"`
	Confidence     float64   `json:"confidence"`
	Factors        []Factor  `json:"factors"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChangePercent is the relative move from current to predicted price.
func (p AIPrediction) ChangePercent() float64 {
	if p.CurrentPrice == 0 {
		return 0
	}
	return (p.PredictedPrice - p.CurrentPrice) / p.CurrentPrice
}

type CoinImpact struct {
	Symbol string  `json:"symbol"`
	Impact float64 `json:"impact"`
}

type NewsImpact struct {
	Title     string         `json:"title"`
	Source    string         `json:"source"`
	URL       string         `json:"url"`
	Sentiment SentimentClass `json:"sentiment"`
	Relevance float64        `json:"relevance"`
	Coins     []CoinImpact   `json:"coins"`
	Timestamp time.Time      `json:"timestamp"`
}

type AnalysisResult struct {
	RunID           string             `json:"run_id"`
	Coins           []string           `json:"coins"`
	MarketSentiment MarketSentiment    `json:"market_sentiment"`
	Predictions     []AIPrediction     `json:"predictions"`
	NewsImpact      []NewsImpact       `json:"news_impact"`
	SocialSentiment map[string]float64 `json:"social_sentiment"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
