package handlers

import (
	"net/http"

	"cryptomaster/analysis"
	"cryptomaster/cache"
	"cryptomaster/locale"
	"cryptomaster/models"
	"cryptomaster/settings"

	"github.com/gin-gonic/gin"
)

// UpdateSource exposes the most recent update check result.
type UpdateSource interface {
	Latest() *models.UpdateInfo
}

type Handler struct {
	query      *cache.Query
	aggregator *analysis.Aggregator
	locale     *locale.Store
	settings   *settings.Service
	updates    UpdateSource
}

type Deps struct {
	Query      *cache.Query
	Aggregator *analysis.Aggregator
	Locale     *locale.Store
	Settings   *settings.Service
	Updates    UpdateSource
}

func New(d Deps) *Handler {
	return &Handler{
		query:      d.Query,
		aggregator: d.Aggregator,
		locale:     d.Locale,
		settings:   d.Settings,
		updates:    d.Updates,
	}
}

// Register mounts pages and the JSON API on r.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(pageTemplates)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/welcome", h.WelcomePage)
	r.GET("/dashboard", h.DashboardPage)
	r.GET("/markets", h.MarketsPage)
	r.GET("/analysis", h.AnalysisPage)
	r.POST("/analysis/run", h.RunAnalysisPage)
	r.GET("/settings", h.SettingsPage)
	r.POST("/settings", h.SaveSettingsPage)
	r.POST("/settings/connect", h.ConnectPage)
	r.POST("/language/toggle", h.ToggleLanguagePage)

	api := r.Group("/api")
	{
		api.GET("/analysis", h.GetAnalysis)
		api.POST("/analysis/run", h.RunAnalysis)
		api.POST("/analysis/refetch", h.RefetchAnalysis)
		api.GET("/predict/:coin", h.Predict)

		api.GET("/locale", h.GetLocale)
		api.PUT("/locale", h.SetLocale)
		api.POST("/locale/toggle", h.ToggleLocale)
		api.GET("/locale/t/:key", h.Translate)

		api.GET("/update", h.GetUpdate)

		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", h.SaveSettings)
		api.POST("/settings/connect", h.ConnectAPI)

		api.GET("/markets", h.GetMarkets)
		api.GET("/dashboard", h.GetDashboard)
	}

	r.NoRoute(h.NotFoundPage)
}

// localizer picks the page language: a valid ?lang= wins over the stored preference.
func (h *Handler) localizer(c *gin.Context) locale.Localizer {
	if q := c.Query("lang"); q != "" {
		if lang, err := locale.Parse(q); err == nil {
			return locale.NewLocalizer(lang)
		}
	}
	return h.locale.Localizer()
}

func (h *Handler) latestUpdate() *models.UpdateInfo {
	if h.updates == nil {
		return nil
	}
	return h.updates.Latest()
}
