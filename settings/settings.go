package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cryptomaster/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrMissingCredentials = errors.New("api key and secret are required")

const settingsID = 1

// Preferences are the user-editable notification and appearance options.
type Preferences struct {
	PriceAlerts   bool `json:"price_alerts"`
	NewsAlerts    bool `json:"news_alerts"`
	TradingAlerts bool `json:"trading_alerts"`
	DarkMode      bool `json:"dark_mode"`
}

func Defaults() models.Settings {
	return models.Settings{
		ID:            settingsID,
		PriceAlerts:   true,
		NewsAlerts:    true,
		TradingAlerts: false,
		DarkMode:      false,
	}
}

type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		logger: log.With().Str("component", "settings").Logger(),
	}
}

// Get returns the stored settings, or the defaults when nothing was saved yet.
// The API key is masked.
func (s *Service) Get(ctx context.Context) (models.Settings, error) {
	st, err := s.load(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	st.APIKey = Mask(st.APIKey)
	return st, nil
}

func (s *Service) Save(ctx context.Context, p Preferences) (models.Settings, error) {
	st, err := s.load(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	st.PriceAlerts = p.PriceAlerts
	st.NewsAlerts = p.NewsAlerts
	st.TradingAlerts = p.TradingAlerts
	st.DarkMode = p.DarkMode

	if err := s.db.WithContext(ctx).Save(&st).Error; err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	s.logger.Info().Msg("settings saved")

	st.APIKey = Mask(st.APIKey)
	return st, nil
}

// Connect stores exchange API credentials. Both values are required.
func (s *Service) Connect(ctx context.Context, apiKey, apiSecret string) error {
	apiKey, apiSecret = strings.TrimSpace(apiKey), strings.TrimSpace(apiSecret)
	if apiKey == "" || apiSecret == "" {
		return ErrMissingCredentials
	}

	st, err := s.load(ctx)
	if err != nil {
		return err
	}
	st.APIKey = apiKey
	st.APISecret = apiSecret
	st.Connected = true

	if err := s.db.WithContext(ctx).Save(&st).Error; err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	s.logger.Info().Str("api_key", Mask(apiKey)).Msg("API connected")
	return nil
}

func (s *Service) load(ctx context.Context) (models.Settings, error) {
	var st models.Settings
	err := s.db.WithContext(ctx).First(&st, settingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return st, nil
}

// Mask hides all but the last four characters of a credential.
func Mask(v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
