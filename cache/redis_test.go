package cache

import (
	"context"
	"testing"
	"time"

	"cryptomaster/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, now time.Time) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := newRedis(client, 15*time.Minute, 24*time.Hour)
	r.now = func() time.Time { return now }
	return r
}

func TestRedisGetMissingKey(t *testing.T) {
	ctx := context.Background()
	r := newTestRedis(t, time.Now())

	e, ok, err := r.Get(ctx, "missing")
	if err != nil || ok || e.Result != nil {
		t.Fatalf("Get(missing) = %+v, %v, %v", e, ok, err)
	}
}

func TestRedisSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRedis(t, now)

	res := &models.AnalysisResult{
		RunID: "r1",
		Coins: []string{"BTC", "ETH"},
		Predictions: []models.AIPrediction{
			{Coin: "BTC", CurrentPrice: 50000, PredictedPrice: 52000, Confidence: 0.8, Timeframe: models.Timeframe7d},
		},
	}
	at := now.Add(-3 * time.Minute)
	if err := r.Set(ctx, "k", res, at); err != nil {
		t.Fatal(err)
	}

	e, ok, err := r.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if !e.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, want %v", e.UpdatedAt, at)
	}
	if e.Result.RunID != "r1" || len(e.Result.Coins) != 2 || len(e.Result.Predictions) != 1 {
		t.Fatalf("Result = %+v", e.Result)
	}
	if p := e.Result.Predictions[0]; p.Coin != "BTC" || p.PredictedPrice != 52000 || p.Timeframe != models.Timeframe7d {
		t.Errorf("prediction = %+v", p)
	}
}

func TestRedisStaleness(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		age   time.Duration
		set   bool
		stale bool
	}{
		{"missing key", 0, false, true},
		{"just written", 0, true, false},
		{"within window", 14*time.Minute + 59*time.Second, true, false},
		{"at window", 15 * time.Minute, true, true},
		{"past window", time.Hour, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := newTestRedis(t, now)
			if tt.set {
				if err := r.Set(ctx, "k", &models.AnalysisResult{RunID: "r"}, now.Add(-tt.age)); err != nil {
					t.Fatal(err)
				}
			}
			stale, err := r.IsStale(ctx, "k")
			if err != nil {
				t.Fatal(err)
			}
			if stale != tt.stale {
				t.Errorf("IsStale() = %v, want %v", stale, tt.stale)
			}
		})
	}
}
