package mood

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/uplift/internal/api"
)

// Known mood labels reported by the emotion detector.
const (
	Happy   = "Happy"
	Sad     = "Sad"
	Neutral = "Neutral"
	Angry   = "Angry"
	Excited = "Excited"
)

// All lists the known moods in display order.
func All() []string {
	return []string{Happy, Sad, Neutral, Angry, Excited}
}

// TimeRange selects the window of the mood chart.
type TimeRange string

const (
	Week  TimeRange = "Week"
	Month TimeRange = "Month"
)

// Days returns the number of days the range covers.
func (r TimeRange) Days() int {
	if r == Month {
		return 30
	}
	return 7
}

// Entry is one chart point: how often an emotion was detected on a day.
type Entry struct {
	ID      uuid.UUID
	Date    time.Time
	Emotion string
	Count   int
}

// statsDateLayout is the backend's per-day key format.
const statsDateLayout = "2006-01-02"

// Entries flattens EmotionStats into chart entries ordered by date, then
// emotion. Days with unparseable keys are skipped.
func Entries(stats *api.EmotionStats) []Entry {
	if stats == nil {
		return nil
	}

	var entries []Entry
	for day, emotions := range stats.EmotionsByDate {
		date, err := time.Parse(statsDateLayout, day)
		if err != nil {
			continue
		}
		for emotion, count := range emotions {
			entries = append(entries, Entry{
				ID:      uuid.New(),
				Date:    date,
				Emotion: emotion,
				Count:   count,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].Emotion < entries[j].Emotion
	})
	return entries
}

// FilterRange keeps entries within the range's window ending at now.
func FilterRange(entries []Entry, r TimeRange, now time.Time) []Entry {
	cutoff := now.AddDate(0, 0, -r.Days())
	var out []Entry
	for _, e := range entries {
		if e.Date.After(cutoff) && !e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums counts per emotion across all days.
func Totals(stats *api.EmotionStats) map[string]int {
	totals := make(map[string]int)
	if stats == nil {
		return totals
	}
	for _, emotions := range stats.EmotionsByDate {
		for emotion, count := range emotions {
			totals[emotion] += count
		}
	}
	return totals
}

// Dominant returns the most frequently detected emotion, breaking ties
// alphabetically. Empty string when there is no data.
func Dominant(stats *api.EmotionStats) string {
	totals := Totals(stats)

	best := ""
	bestCount := 0
	for emotion, count := range totals {
		if count > bestCount || (count == bestCount && best != "" && emotion < best) {
			best = emotion
			bestCount = count
		}
	}
	return best
}
