// Package market serves the sample market and portfolio data shown on the
// dashboard, markets and welcome pages.
package market

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type ChartPoint struct {
	Time  string          `json:"time"`
	Price decimal.Decimal `json:"price"`
}

type Coin struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"`
	MarketCap decimal.Decimal `json:"market_cap"`
	Volume24h decimal.Decimal `json:"volume_24h"`
	Chart     []ChartPoint    `json:"chart"`
}

func (c Coin) Up() bool {
	return c.Change24h.IsPositive()
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func chart(prices ...string) []ChartPoint {
	points := make([]ChartPoint, len(prices))
	for i, p := range prices {
		points[i] = ChartPoint{Time: string(rune('1'+i)) + "d", Price: d(p)}
	}
	return points
}

var coins = []Coin{
	{
		ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC",
		Price: d("45230.42"), Change24h: d("5.23"), MarketCap: d("876543210000"), Volume24h: d("32165498765"),
		Chart: chart("44000", "43000", "45000", "44500", "43800", "44300", "45230"),
	},
	{
		ID: "ethereum", Name: "Ethereum", Symbol: "ETH",
		Price: d("2843.15"), Change24h: d("3.78"), MarketCap: d("345678900000"), Volume24h: d("19876543210"),
		Chart: chart("2700", "2750", "2800", "2650", "2700", "2780", "2843"),
	},
	{
		ID: "cardano", Name: "Cardano", Symbol: "ADA",
		Price: d("0.93"), Change24h: d("-1.42"), MarketCap: d("32165498700"), Volume24h: d("1876543210"),
		Chart: chart("0.95", "0.97", "0.96", "0.94", "0.92", "0.91", "0.93"),
	},
	{
		ID: "solana", Name: "Solana", Symbol: "SOL",
		Price: d("123.45"), Change24h: d("8.71"), MarketCap: d("45678912300"), Volume24h: d("3456789012"),
		Chart: chart("115", "118", "117", "120", "119", "122", "123"),
	},
	{
		ID: "binancecoin", Name: "BNB", Symbol: "BNB",
		Price: d("378.20"), Change24h: d("1.15"), MarketCap: d("58123456700"), Volume24h: d("1234567890"),
		Chart: chart("370", "372", "368", "375", "380", "376", "378"),
	},
}

// Coins returns the market list ranked by market cap.
func Coins() []Coin {
	out := append([]Coin(nil), coins...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MarketCap.GreaterThan(out[j].MarketCap)
	})
	return out
}

// Search filters the market list by name or symbol, case-insensitively.
func Search(query string) []Coin {
	q := strings.ToLower(strings.TrimSpace(query))
	all := Coins()
	if q == "" {
		return all
	}

	var out []Coin
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Symbol), q) {
			out = append(out, c)
		}
	}
	return out
}
