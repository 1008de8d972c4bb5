package handlers

import (
	"embed"
	"fmt"
	"html/template"

	"cryptomaster/analysis"
	"cryptomaster/locale"
	"cryptomaster/models"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
)

var templateFuncs = template.FuncMap{
	"pct": func(v float64) string {
		return fmt.Sprintf("%+.2f%%", v*100)
	},
	"score": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
	"money": func(v float64) string {
		if v < 10 {
			return fmt.Sprintf("$%.4f", v)
		}
		return "$" + decimal.NewFromFloat(v).StringFixed(2)
	},
	"dec": func(v decimal.Decimal) string {
		return v.StringFixed(2)
	},
	"classify": func(v float64) string {
		return string(analysis.ClassifySentiment(v))
	},
	"mood": func(v float64) string {
		switch analysis.ClassifySentiment(v) {
		case models.SentimentPositive:
			return "bullish"
		case models.SentimentNegative:
			return "bearish"
		}
		return "neutral"
	},
	"inc": func(i int) int {
		return i + 1
	},
	"dict": func(pairs ...string) map[string]string {
		m := make(map[string]string, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			m[pairs[i]] = pairs[i+1]
		}
		return m
	},
}

type navItem struct {
	Path   string
	Key    string
	Active bool
}

var navigation = []navItem{
	{Path: "/dashboard", Key: "dashboard"},
	{Path: "/markets", Key: "markets"},
	{Path: "/analysis", Key: "analysis"},
	{Path: "/settings", Key: "settings"},
}

// page is the data every template receives. Data holds the page-specific payload.
type page struct {
	L      locale.Localizer
	Path   string
	Nav    []navItem
	Update *models.UpdateInfo
	Toast  *toast
	Data   any
}

type toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

func (h *Handler) newPage(l locale.Localizer, path string, data any) page {
	nav := make([]navItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.Path == path
		nav[i] = item
	}
	return page{
		L:      l,
		Path:   path,
		Nav:    nav,
		Update: h.latestUpdate(),
		Data:   data,
	}
}

// toastFor resolves a toast.<name> pair of keys, as set by form redirects.
func toastFor(l locale.Localizer, name string, destructive bool) *toast {
	if name == "" {
		return nil
	}
	return &toast{
		Title:       l.T("toast." + name + "Title"),
		Description: l.T("toast." + name),
		Destructive: destructive,
	}
}
