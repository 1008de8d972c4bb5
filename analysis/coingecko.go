package analysis

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cryptomaster/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var coinGeckoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
	"ADA": "cardano",
	"BNB": "binancecoin",
}

type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// CoinGeckoSource prices predictions from CoinGecko's spot USD price and
// delegates everything else to a fallback source. When the live price cannot
// be fetched the fallback's prediction is returned unchanged.
type CoinGeckoSource struct {
	Source
	client  JSONGetter
	baseURL string
	logger  zerolog.Logger
}

func NewCoinGeckoSource(fallback Source, client JSONGetter, baseURL string) *CoinGeckoSource {
	return &CoinGeckoSource{
		Source:  fallback,
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With().Str("component", "coingecko").Logger(),
	}
}

func (s *CoinGeckoSource) FetchPrediction(ctx context.Context, coin string, tf models.Timeframe) (models.AIPrediction, error) {
	p, err := s.Source.FetchPrediction(ctx, coin, tf)
	if err != nil {
		return p, err
	}

	live, err := s.spotPrice(ctx, coin)
	if err != nil {
		s.logger.Warn().Err(err).Str("coin", coin).Msg("live price unavailable, using fallback")
		return p, nil
	}

	change := p.ChangePercent()
	p.CurrentPrice = live
	p.PredictedPrice = live * (1 + change)
	return p, nil
}

func (s *CoinGeckoSource) spotPrice(ctx context.Context, coin string) (float64, error) {
	id, ok := coinGeckoIDs[strings.ToUpper(coin)]
	if !ok {
		return 0, fmt.Errorf("no coingecko id for %s", coin)
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", s.baseURL, url.QueryEscape(id))

	var resp map[string]map[string]float64
	if err := s.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("fetch price: %w", err)
	}

	price, ok := resp[id]["usd"]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("no usd price for %s", id)
	}
	return price, nil
}
