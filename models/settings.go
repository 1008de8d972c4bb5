package models

import "time"

// Preference is a single key/value entry of the persisted preference store.
type Preference struct {
	Key       string    `json:"key" gorm:"column:pref_key;primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Settings struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	APIKey        string    `json:"api_key"`
	APISecret     string    `json:"-"`
	PriceAlerts   bool      `json:"price_alerts"`
	NewsAlerts    bool      `json:"news_alerts"`
	TradingAlerts bool      `json:"trading_alerts"`
	DarkMode      bool      `json:"dark_mode"`
	Connected     bool      `json:"connected"`
	UpdatedAt     time.Time `json:"updated_at"`
}
