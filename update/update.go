// Package update checks whether a newer application version is available.
package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"cryptomaster/models"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// CurrentVersion must be bumped on every release.
	CurrentVersion = "1.0.0"
	LatestVersion  = "1.0.0"

	DownloadURL     = "https://yourwebsite.com/download"
	ReleaseNotes    = "Performance improvements and bug fixes"
	DefaultInterval = 24 * time.Hour
)

// CompareVersions compares dotted numeric versions component by component.
// Missing or non-numeric components count as 0. It returns 1 if a is newer,
// -1 if b is newer and 0 if they are equal.
func CompareVersions(a, b string) int {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")

	n := len(ap)
	if len(bp) > n {
		n = len(bp)
	}
	for i := 0; i < n; i++ {
		av, bv := part(ap, i), part(bp, i)
		if av > bv {
			return 1
		}
		if av < bv {
			return -1
		}
	}
	return 0
}

func part(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}

type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Manifest is the document served at a release manifest URL.
type Manifest struct {
	Version  string `json:"version"`
	Required bool   `json:"required"`
	URL      string `json:"url"`
	Notes    string `json:"notes"`
}

type Checker struct {
	Current string
	Latest  string
	URL     string
	Notes   string

	// When ManifestURL is set the latest version is fetched from it instead of Latest.
	ManifestURL string
	Client      JSONGetter
}

func NewChecker() *Checker {
	return &Checker{
		Current: CurrentVersion,
		Latest:  LatestVersion,
		URL:     DownloadURL,
		Notes:   ReleaseNotes,
	}
}

// Check returns update details when a newer version exists, nil otherwise.
func (c *Checker) Check(ctx context.Context) (*models.UpdateInfo, error) {
	latest := models.UpdateInfo{Version: c.Latest, URL: c.URL, Notes: c.Notes}

	if c.ManifestURL != "" && c.Client != nil {
		var m Manifest
		if err := c.Client.GetJSON(ctx, c.ManifestURL, &m); err != nil {
			return nil, fmt.Errorf("fetch release manifest: %w", err)
		}
		latest.Version = m.Version
		latest.Required = m.Required
		if m.URL != "" {
			latest.URL = m.URL
		}
		if m.Notes != "" {
			latest.Notes = m.Notes
		}
	}

	if CompareVersions(latest.Version, c.Current) > 0 {
		return &latest, nil
	}
	return nil, nil
}

// Poller runs a Checker immediately and then on a fixed interval.
type Poller struct {
	checker  *Checker
	interval time.Duration
	logger   zerolog.Logger

	mu     sync.RWMutex
	latest *models.UpdateInfo
	notify func(models.UpdateInfo)
}

func NewPoller(checker *Checker, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		checker:  checker,
		interval: interval,
		logger:   log.With().Str("component", "update").Logger(),
	}
}

// OnUpdate registers fn to be called whenever a check finds an update.
func (p *Poller) OnUpdate(fn func(models.UpdateInfo)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = fn
}

// Start blocks until ctx is cancelled. Check failures are logged and never returned.
func (p *Poller) Start(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	info, err := p.checker.Check(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to check for updates")
		return
	}
	if info == nil {
		p.logger.Debug().Str("current", p.checker.Current).Msg("no update available")
		return
	}

	p.mu.Lock()
	p.latest = info
	notify := p.notify
	p.mu.Unlock()

	p.logger.Info().Str("version", info.Version).Bool("required", info.Required).Msg("update available")
	if notify != nil {
		notify(*info)
	}
}

// Latest returns the most recent update found, or nil.
func (p *Poller) Latest() *models.UpdateInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}
