package analysis

import (
	"context"
	"errors"
	"testing"

	"cryptomaster/models"
)

func TestRunTwoCoins(t *testing.T) {
	agg := NewAggregator(NewMockSource(11))

	res, err := agg.Run(context.Background(), []string{"BTC", "ETH"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(res.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(res.Predictions))
	}
	for i, want := range []string{"BTC", "ETH"} {
		if res.Predictions[i].Coin != want {
			t.Errorf("prediction %d coin = %s, want %s", i, res.Predictions[i].Coin, want)
		}
		if res.Predictions[i].Timeframe != models.Timeframe7d {
			t.Errorf("prediction %d timeframe = %s, want 7d", i, res.Predictions[i].Timeframe)
		}
	}
	if len(res.NewsImpact) != 3 {
		t.Errorf("got %d news items, want 3", len(res.NewsImpact))
	}
	if len(res.SocialSentiment) != 2 {
		t.Errorf("got %d social scores, want 2", len(res.SocialSentiment))
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRunDefaultsCoins(t *testing.T) {
	agg := NewAggregator(NewMockSource(11))

	res, err := agg.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Predictions) != len(DefaultCoins) {
		t.Fatalf("got %d predictions, want %d", len(res.Predictions), len(DefaultCoins))
	}
}

type failingSource struct {
	*MockSource
}

func (failingSource) FetchNews(context.Context) ([]models.NewsImpact, error) {
	return nil, errors.New("feed down")
}

func TestRunFailsWhenProducerFails(t *testing.T) {
	agg := NewAggregator(failingSource{NewMockSource(1)})

	res, err := agg.Run(context.Background(), []string{"BTC"})
	if err == nil {
		t.Fatal("expected error")
	}
	if res != nil {
		t.Error("expected no partial result")
	}
}

func TestNormalizeCoins(t *testing.T) {
	got := NormalizeCoins([]string{" btc", "", "Eth "})
	if len(got) != 2 || got[0] != "BTC" || got[1] != "ETH" {
		t.Errorf("NormalizeCoins() = %v", got)
	}

	for _, in := range [][]string{nil, {}, {" ", ""}} {
		if got := NormalizeCoins(in); len(got) != len(DefaultCoins) || got[0] != DefaultCoins[0] {
			t.Errorf("NormalizeCoins(%q) = %v, want defaults", in, got)
		}
	}
}
