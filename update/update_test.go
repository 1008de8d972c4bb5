package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"cryptomaster/models"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.2.0", "1.10.0", -1},
		{"1.10.0", "1.2.0", 1},
		{"2", "1.9.9", 1},
		{"1.0", "1.0.0", 0},
		{"1.0.1", "1.0", 1},
		{"1.x.0", "1.0.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := CompareVersions(tt.b, tt.a); got != -tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
			if got := CompareVersions(tt.a, tt.a); got != 0 {
				t.Errorf("CompareVersions(%q, %q) = %d, want 0", tt.a, tt.a, got)
			}
		})
	}
}

func TestCheckNoUpdateWhenEqual(t *testing.T) {
	c := NewChecker()
	info, err := c.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info != nil {
		t.Errorf("Check() = %+v, want nil", info)
	}
}

func TestCheckReportsNewerVersion(t *testing.T) {
	c := NewChecker()
	c.Latest = "1.1.0"

	info, err := c.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info == nil {
		t.Fatal("Check() = nil, want update")
	}
	if info.Version != "1.1.0" || info.Required || info.URL != DownloadURL {
		t.Errorf("Check() = %+v", info)
	}
}

type manifestGetter struct {
	m   Manifest
	err error
}

func (g manifestGetter) GetJSON(_ context.Context, _ string, out any) error {
	if g.err != nil {
		return g.err
	}
	*out.(*Manifest) = g.m
	return nil
}

func TestCheckUsesManifest(t *testing.T) {
	c := NewChecker()
	c.ManifestURL = "https://releases.example.com/latest.json"
	c.Client = manifestGetter{m: Manifest{Version: "2.0.0", Required: true}}

	info, err := c.Check(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info == nil || info.Version != "2.0.0" || !info.Required {
		t.Errorf("Check() = %+v", info)
	}
	if info.URL != DownloadURL {
		t.Errorf("URL = %q, want default", info.URL)
	}
}

func TestPollerSwallowsErrors(t *testing.T) {
	c := NewChecker()
	c.ManifestURL = "https://releases.example.com/latest.json"
	c.Client = manifestGetter{err: errors.New("offline")}

	p := NewPoller(c, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	if p.Latest() != nil {
		t.Errorf("Latest() = %+v, want nil", p.Latest())
	}
}

func TestPollerChecksOnStartAndInterval(t *testing.T) {
	c := NewChecker()
	c.Latest = "1.0.1"

	p := NewPoller(c, 10*time.Millisecond)
	found := make(chan models.UpdateInfo, 8)
	p.OnUpdate(func(info models.UpdateInfo) {
		select {
		case found <- info:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case info := <-found:
			if info.Version != "1.0.1" {
				t.Errorf("update version = %q", info.Version)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("check %d did not run", i+1)
		}
	}
	if p.Latest() == nil {
		t.Error("Latest() = nil after update found")
	}
}
