package handlers

import (
	"errors"
	"net/http"

	"cryptomaster/settings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ConnectRequest struct {
	APIKey    string `json:"api_key" form:"api_key"`
	APISecret string `json:"api_secret" form:"api_secret"`
}

func (h *Handler) GetSettings(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var prefs settings.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	st, err := h.settings.Save(c.Request.Context(), prefs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	l := h.localizer(c)
	c.JSON(http.StatusOK, gin.H{"settings": st, "toast": toastFor(l, "settingsSaved", false)})
}

func (h *Handler) ConnectAPI(c *gin.Context) {
	var request ConnectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	l := h.localizer(c)
	if err := h.settings.Connect(c.Request.Context(), request.APIKey, request.APISecret); err != nil {
		if errors.Is(err, settings.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "toast": toastFor(l, "missingInfo", true)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true, "toast": toastFor(l, "apiConnected", false)})
}

func (h *Handler) SettingsPage(c *gin.Context) {
	st, err := h.settings.Get(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("load settings failed")
		st = settings.Defaults()
	}

	l := h.localizer(c)
	p := h.newPage(l, "/settings", st)
	p.Toast = toastFor(l, c.Query("toast"), c.Query("variant") == "destructive")
	c.HTML(http.StatusOK, "settings", p)
}

func (h *Handler) SaveSettingsPage(c *gin.Context) {
	prefs := settings.Preferences{
		PriceAlerts:   c.PostForm("price_alerts") != "",
		NewsAlerts:    c.PostForm("news_alerts") != "",
		TradingAlerts: c.PostForm("trading_alerts") != "",
		DarkMode:      c.PostForm("dark_mode") != "",
	}
	if _, err := h.settings.Save(c.Request.Context(), prefs); err != nil {
		log.Error().Err(err).Msg("save settings failed")
		c.Redirect(http.StatusSeeOther, "/settings")
		return
	}
	c.Redirect(http.StatusSeeOther, "/settings?toast=settingsSaved")
}

func (h *Handler) ConnectPage(c *gin.Context) {
	var request ConnectRequest
	if err := c.ShouldBind(&request); err != nil {
		log.Warn().Err(err).Msg("invalid connect form")
		c.Redirect(http.StatusSeeOther, "/settings?toast=invalidRequest&variant=destructive")
		return
	}

	err := h.settings.Connect(c.Request.Context(), request.APIKey, request.APISecret)
	switch {
	case errors.Is(err, settings.ErrMissingCredentials):
		c.Redirect(http.StatusSeeOther, "/settings?toast=missingInfo&variant=destructive")
	case err != nil:
		log.Error().Err(err).Msg("save credentials failed")
		c.Redirect(http.StatusSeeOther, "/settings")
	default:
		c.Redirect(http.StatusSeeOther, "/settings?toast=apiConnected")
	}
}
