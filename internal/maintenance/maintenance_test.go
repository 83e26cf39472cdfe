package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/austats/internal/ingest"
	"github.com/albapepper/austats/internal/stat"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeAgg struct {
	fail map[string]bool
}

func (f *fakeAgg) SeasonStats(_ context.Context, league string, year int, level stat.Level) ([]stat.SeasonAggregate, ingest.Result, error) {
	if f.fail[league] {
		return nil, ingest.Result{}, errors.New("vendor down")
	}
	return []stat.SeasonAggregate{{Sport: league, Level: level.String(), SeasonYear: year}}, ingest.Result{Games: 1}, nil
}

type fakeSink struct {
	runs   map[uuid.UUID]bool
	levels []string
}

func (f *fakeSink) UpsertSeasonAggregates(_ context.Context, league string, runID uuid.UUID, aggs []stat.SeasonAggregate) (int, error) {
	f.runs[runID] = true
	for _, a := range aggs {
		f.levels = append(f.levels, league+":"+a.Level)
	}
	return len(aggs), nil
}

func TestRefreshSeason(t *testing.T) {
	sink := &fakeSink{runs: map[uuid.UUID]bool{}}
	agg := &fakeAgg{fail: map[string]bool{"lacrosse": true}}
	n := RefreshSeason(context.Background(), agg, sink, []string{"softball", "lacrosse", "volleyball"}, 2023, quiet)
	if n != 4 {
		t.Errorf("RefreshSeason() = %d rows, want 4", n)
	}
	want := []string{"softball:player", "softball:team", "volleyball:player", "volleyball:team"}
	if len(sink.levels) != len(want) {
		t.Fatalf("levels = %v, want %v", sink.levels, want)
	}
	for i := range want {
		if sink.levels[i] != want[i] {
			t.Errorf("levels[%d] = %q, want %q", i, sink.levels[i], want[i])
		}
	}
	if len(sink.runs) != 1 {
		t.Errorf("run ids = %d, want one per refresh", len(sink.runs))
	}
}

func TestStartDisabledReturns(t *testing.T) {
	done := make(chan struct{})
	go func() {
		Start(context.Background(), &fakeAgg{}, &fakeSink{runs: map[uuid.UUID]bool{}}, Config{}, quiet)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start() with zero interval did not return")
	}
}
