package handlers

import (
	"errors"
	"net/http"

	"cryptomaster/locale"

	"github.com/gin-gonic/gin"
)

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) GetLocale(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"language": h.locale.Language(),
		"document": h.locale.Document(),
	})
}

func (h *Handler) SetLocale(c *gin.Context) {
	var request LanguageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	lang, err := locale.Parse(request.Language)
	if err == nil {
		err = h.locale.SetLanguage(lang)
	}
	if err != nil {
		if errors.Is(err, locale.ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save language"})
		return
	}
	h.GetLocale(c)
}

func (h *Handler) ToggleLocale(c *gin.Context) {
	if _, err := h.locale.Toggle(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save language"})
		return
	}
	h.GetLocale(c)
}

func (h *Handler) Translate(c *gin.Context) {
	l := h.localizer(c)
	key := c.Param("key")
	c.JSON(http.StatusOK, gin.H{"key": key, "language": l.Language, "text": l.T(key)})
}
