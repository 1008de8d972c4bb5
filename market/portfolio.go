package market

import "github.com/shopspring/decimal"

type ValuePoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type Share struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type Transaction struct {
	ID     int             `json:"id"`
	Type   string          `json:"type"`
	Coin   string          `json:"coin"`
	Amount decimal.Decimal `json:"amount"`
	Value  decimal.Decimal `json:"value"`
	Time   string          `json:"time"`
}

type Alert struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Coin        string `json:"coin,omitempty"`
	Message     string `json:"message"`
	Impact      string `json:"impact,omitempty"`
	Reliability string `json:"reliability,omitempty"`
	Time        string `json:"time"`
}

type Portfolio struct {
	History      []ValuePoint  `json:"history"`
	Allocation   []Share       `json:"allocation"`
	Performance  []Share       `json:"performance"`
	Transactions []Transaction `json:"transactions"`
	Alerts       []Alert       `json:"alerts"`
}

// CurrentValue is the last point of the portfolio history.
func (p Portfolio) CurrentValue() decimal.Decimal {
	if len(p.History) == 0 {
		return decimal.Zero
	}
	return p.History[len(p.History)-1].Value
}

// Growth is the percentage change between the first and last history points.
func (p Portfolio) Growth() decimal.Decimal {
	if len(p.History) < 2 || p.History[0].Value.IsZero() {
		return decimal.Zero
	}
	first := p.History[0].Value
	return p.CurrentValue().Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
}

func SamplePortfolio() Portfolio {
	return Portfolio{
		History: []ValuePoint{
			{"Jan", d("10000")}, {"Feb", d("12000")}, {"Mar", d("11500")}, {"Apr", d("13500")},
			{"May", d("15000")}, {"Jun", d("16500")}, {"Jul", d("18000")},
		},
		Allocation: []Share{
			{"BTC", d("45")}, {"ETH", d("30")}, {"SOL", d("15")}, {"Other", d("10")},
		},
		Performance: []Share{
			{"BTC", d("18.5")}, {"ETH", d("12.3")}, {"SOL", d("25.7")}, {"ADA", d("-5.2")}, {"BNB", d("8.9")},
		},
		Transactions: []Transaction{
			{1, "buy", "Bitcoin", d("0.25"), d("11307.61"), "2023-05-07 14:32"},
			{2, "sell", "Ethereum", d("1.5"), d("4264.73"), "2023-05-06 09:15"},
			{3, "buy", "Solana", d("10"), d("1234.50"), "2023-05-05 16:48"},
		},
		Alerts: []Alert{
			{ID: 1, Type: "price", Coin: "Bitcoin", Message: "BTC reached your target price of $45,000", Time: "10 minutes ago"},
			{ID: 2, Type: "news", Message: "New regulations proposed for cryptocurrency exchanges", Impact: "high", Time: "2 hours ago"},
			{ID: 3, Type: "ai", Message: "AI model predicts 15% increase in ETH price within 48 hours", Reliability: "medium", Time: "5 hours ago"},
		},
	}
}

// WelcomePoint is one month of the BTC/ETH history shown on the welcome page.
type WelcomePoint struct {
	Name string          `json:"name"`
	BTC  decimal.Decimal `json:"btc"`
	ETH  decimal.Decimal `json:"eth"`
}

func WelcomeChart() []WelcomePoint {
	return []WelcomePoint{
		{"Jan", d("29000"), d("1800")},
		{"Feb", d("32000"), d("1900")},
		{"Mar", d("34000"), d("2100")},
		{"Apr", d("31000"), d("1950")},
		{"May", d("38000"), d("2300")},
		{"Jun", d("42000"), d("2600")},
		{"Jul", d("45000"), d("2800")},
	}
}
