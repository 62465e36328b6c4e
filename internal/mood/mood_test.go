package mood

import (
	"testing"
	"time"

	"github.com/abhisek/uplift/internal/api"
)

func sampleStats() *api.EmotionStats {
	return &api.EmotionStats{
		EmotionsByDate: map[string]map[string]int{
			"2026-08-25": {"happy": 2, "sad": 1},
			"2026-08-26": {"happy": 1},
			"2026-08-01": {"angry": 3},
			"bad-key":    {"happy": 9},
		},
		TotalEmotions: 7,
		DateRange:     api.DateRange{Start: "2026-08-01", End: "2026-08-26"},
	}
}

func TestEntriesOrderedAndFiltered(t *testing.T) {
	entries := Entries(sampleStats())

	// bad-key day dropped: 1 + 2 + 1 entries remain.
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}
	if entries[0].Emotion != "angry" {
		t.Errorf("first entry = %q, want oldest day first", entries[0].Emotion)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Before(entries[i-1].Date) {
			t.Errorf("entries out of order at %d", i)
		}
	}
	if entries[1].Emotion != "happy" || entries[2].Emotion != "sad" {
		t.Errorf("same-day entries not sorted by emotion: %q, %q", entries[1].Emotion, entries[2].Emotion)
	}
}

func TestFilterRangeWeek(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	entries := FilterRange(Entries(sampleStats()), Week, now)

	// The angry day (Aug 1) is outside the week window.
	for _, e := range entries {
		if e.Emotion == "angry" {
			t.Error("entry outside the week window survived the filter")
		}
	}
	if len(entries) != 3 {
		t.Errorf("len = %d, want 3", len(entries))
	}
}

func TestRangeDays(t *testing.T) {
	if Week.Days() != 7 {
		t.Errorf("Week.Days() = %d, want 7", Week.Days())
	}
	if Month.Days() != 30 {
		t.Errorf("Month.Days() = %d, want 30", Month.Days())
	}
}

func TestTotalsAndDominant(t *testing.T) {
	stats := sampleStats()

	totals := Totals(stats)
	if totals["happy"] != 12 { // includes the bad-key day; totals don't parse dates
		t.Errorf("totals[happy] = %d, want 12", totals["happy"])
	}
	if totals["angry"] != 3 {
		t.Errorf("totals[angry] = %d, want 3", totals["angry"])
	}

	if got := Dominant(stats); got != "happy" {
		t.Errorf("Dominant = %q, want happy", got)
	}
	if got := Dominant(nil); got != "" {
		t.Errorf("Dominant(nil) = %q, want empty", got)
	}
}
