package analysis

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"cryptomaster/models"
)

type priceRange struct {
	base, spread float64
}

var basePrices = map[string]priceRange{
	"BTC": {45000, 5000},
	"ETH": {3000, 500},
	"SOL": {100, 30},
	"ADA": {0.8, 0.4},
	"BNB": {350, 50},
}

var defaultPrice = priceRange{100, 900}

var volatility = map[string]float64{
	"BTC": 0.8,
	"ETH": 1.0,
	"SOL": 1.3,
	"ADA": 1.2,
	"BNB": 0.9,
}

// maxChange is the largest relative move allowed per timeframe before volatility scaling.
var maxChange = map[models.Timeframe]float64{
	models.Timeframe24h: 0.05,
	models.Timeframe7d:  0.15,
	models.Timeframe30d: 0.30,
}

type factorTemplate struct {
	name, description string
	min, spread       float64
}

var positiveFactors = []factorTemplate{
	{"Increased Institutional Adoption", "Financial institutions are buying in higher volumes", 0.3, 0.5},
	{"Technical Indicators", "Moving averages show bullish crossover pattern", 0.2, 0.4},
	{"Positive Market Sentiment", "Social media analysis shows increasing interest", 0.1, 0.5},
}

var negativeFactors = []factorTemplate{
	{"Regulatory Concerns", "New regulations might affect cryptocurrency markets", 0.3, 0.5},
	{"Technical Indicators", "Resistance levels indicate possible correction", 0.2, 0.4},
	{"Market Sentiment Shift", "Decreasing mentions and interest on social platforms", 0.1, 0.5},
}

// VolatilityFactor returns the volatility multiplier for coin, 1.0 when unknown.
func VolatilityFactor(coin string) float64 {
	if v, ok := volatility[strings.ToUpper(coin)]; ok {
		return v
	}
	return 1.0
}

// MaxChange returns the unscaled change cap for tf.
func MaxChange(tf models.Timeframe) (float64, bool) {
	m, ok := maxChange[tf]
	return m, ok
}

// MockSource generates random analysis data without any I/O.
type MockSource struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewMockSource(seed int64) *MockSource {
	return &MockSource{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (m *MockSource) uniform(min, max float64) float64 {
	return min + m.rng.Float64()*(max-min)
}

// AnalyzeMarketSentiment weighs technical, social and news scores 0.5/0.3/0.2.
// The coins argument is not used to generate scores.
func (m *MockSource) AnalyzeMarketSentiment(coins []string) models.MarketSentiment {
	m.mu.Lock()
	technical := m.uniform(0.3, 0.8)
	social := m.uniform(-0.2, 0.5)
	news := m.uniform(0.1, 0.6)
	m.mu.Unlock()

	return models.MarketSentiment{
		OverallScore: technical*0.5 + social*0.3 + news*0.2,
		Sources: models.SentimentSources{
			TechnicalAnalysis: technical,
			SocialMedia:       social,
			NewsArticles:      news,
		},
		Timestamp: m.now(),
	}
}

func (m *MockSource) PredictPrice(coin string, tf models.Timeframe) (models.AIPrediction, error) {
	limit, ok := maxChange[tf]
	if !ok {
		return models.AIPrediction{}, fmt.Errorf("%w: %q", ErrInvalidTimeframe, tf)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.coinPrice(coin)
	change := m.uniform(-limit, limit) * VolatilityFactor(coin)

	return models.AIPrediction{
		Coin:           coin,
		CurrentPrice:   current,
		PredictedPrice: current * (1 + change),
		Timeframe:      tf,
		Confidence:     m.uniform(0.5, 0.9),
		Factors:        m.factors(change > 0),
		Timestamp:      m.now(),
	}, nil
}

// AnalyzeNewsImpact returns the fixed set of headlines.
func (m *MockSource) AnalyzeNewsImpact() []models.NewsImpact {
	now := m.now()
	return []models.NewsImpact{
		{
			Title:     "Major Bank Announces Bitcoin Investment Strategy",
			Source:    "CryptoNews",
			URL:       "https://example.com/news/1",
			Sentiment: models.SentimentPositive,
			Relevance: 0.85,
			Coins:     []models.CoinImpact{{Symbol: "BTC", Impact: 0.7}, {Symbol: "ETH", Impact: 0.3}},
			Timestamp: now,
		},
		{
			Title:     "Regulatory Concerns Mount Over DeFi Platforms",
			Source:    "BlockchainTimes",
			URL:       "https://example.com/news/2",
			Sentiment: models.SentimentNegative,
			Relevance: 0.75,
			Coins: []models.CoinImpact{
				{Symbol: "ETH", Impact: -0.6},
				{Symbol: "SOL", Impact: -0.5},
				{Symbol: "ADA", Impact: -0.4},
			},
			Timestamp: now,
		},
		{
			Title:     "Ethereum 2.0 Development Progress Report Released",
			Source:    "DevInsider",
			URL:       "https://example.com/news/3",
			Sentiment: models.SentimentPositive,
			Relevance: 0.9,
			Coins:     []models.CoinImpact{{Symbol: "ETH", Impact: 0.8}},
			Timestamp: now,
		},
	}
}

func (m *MockSource) AnalyzeSocialMediaSentiment(coins []string) map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	scores := make(map[string]float64, len(coins))
	for _, coin := range coins {
		scores[coin] = m.uniform(-1, 1)
	}
	return scores
}

func (m *MockSource) FetchSentiment(_ context.Context, coins []string) (models.MarketSentiment, error) {
	return m.AnalyzeMarketSentiment(coins), nil
}

func (m *MockSource) FetchPrediction(_ context.Context, coin string, tf models.Timeframe) (models.AIPrediction, error) {
	return m.PredictPrice(coin, tf)
}

func (m *MockSource) FetchNews(context.Context) ([]models.NewsImpact, error) {
	return m.AnalyzeNewsImpact(), nil
}

func (m *MockSource) FetchSocialSentiment(_ context.Context, coins []string) (map[string]float64, error) {
	return m.AnalyzeSocialMediaSentiment(coins), nil
}

// coinPrice and factors expect m.mu to be held.
func (m *MockSource) coinPrice(coin string) float64 {
	r, ok := basePrices[strings.ToUpper(coin)]
	if !ok {
		r = defaultPrice
	}
	return r.base + m.rng.Float64()*r.spread
}

func (m *MockSource) factors(positive bool) []models.Factor {
	bank, sign := negativeFactors, -1.0
	if positive {
		bank, sign = positiveFactors, 1.0
	}

	count := 1 + m.rng.Intn(len(bank))
	order := m.rng.Perm(len(bank))

	factors := make([]models.Factor, 0, count)
	for _, i := range order[:count] {
		f := bank[i]
		factors = append(factors, models.Factor{
			Name:        f.name,
			Description: f.description,
			Influence:   sign * (f.min + m.rng.Float64()*f.spread),
		})
	}
	return factors
}
