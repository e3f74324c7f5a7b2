package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestScore_NeverNaNOrInf(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	farFuture := now.AddDate(200, 0, 0)
	farPast := now.AddDate(-200, 0, 0)

	tests := []struct {
		name string
		item models.Item
	}{
		{
			name: "importance 4 far future deadline",
			item: models.Item{Name: "a", Importance: intPtr(4), Created: now, Deadline: timePtr(farFuture)},
		},
		{
			name: "importance 4 far past deadline",
			item: models.Item{Name: "b", Importance: intPtr(4), Created: now, Deadline: timePtr(farPast)},
		},
		{
			name: "time importance 2 very old item",
			item: models.Item{Name: "c", TimeImportance: intPtr(2), Created: farPast},
		},
		{
			name: "deadline only exactly now",
			item: models.Item{Name: "d", Created: now, Deadline: timePtr(now)},
		},
		{
			name: "deadline before creation",
			item: models.Item{Name: "e", Created: now, Importance: intPtr(1), Deadline: timePtr(now.AddDate(0, 0, -3))},
		},
		{
			name: "malformed item",
			item: models.Item{Name: "f", Created: now},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Score(&tt.item, now, FixedJitter(1.05))
			if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
				t.Errorf("Score() = %v, want finite", got)
			}
		})
	}
}

func TestScore_MalformedGetsSentinel(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	malformed := models.Item{Name: "broken", Created: now}

	got := Score(&malformed, now, FixedJitter(1.0))
	if got != SentinelScore {
		t.Errorf("Score(malformed) = %v, want %v", got, float32(SentinelScore))
	}

	// Well-formed items of every class must score strictly below the sentinel.
	wellFormed := []models.Item{
		{Name: "t4", Importance: intPtr(4), Created: now, Deadline: timePtr(now.AddDate(0, 0, 2))},
		{Name: "t0", Importance: intPtr(0), Created: now, Deadline: timePtr(now.AddDate(0, 0, 2))},
		{Name: "u2", TimeImportance: intPtr(2), Created: now.AddDate(0, 0, -30)},
		{Name: "u0", TimeImportance: intPtr(0), Created: now},
	}
	for _, it := range wellFormed {
		if s := Score(&it, now, FixedJitter(1.0)); s >= got {
			t.Errorf("Score(%s) = %v, want < sentinel %v", it.Name, s, got)
		}
	}
}

func TestScore_ImportanceProximityMonotonic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// For the exponential classes, a nearer deadline must never score lower
	// than a farther one.
	for _, importance := range []int{3, 4} {
		prev := float32(math.Inf(1))
		for days := 1; days <= 60; days++ {
			it := models.Item{
				Name:       "t",
				Importance: intPtr(importance),
				Created:    now,
				Deadline:   timePtr(now.AddDate(0, 0, days)),
			}
			got := Score(&it, now, FixedJitter(1.0))
			if got > prev {
				t.Fatalf("importance %d: score at %d days (%v) exceeds score at %d days (%v)",
					importance, days, got, days-1, prev)
			}
			prev = got
		}
	}
}

func TestScore_TimeUrgencyGrowsWithAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, urgency := range []int{0, 1, 2} {
		prev := float32(-1)
		for age := 0; age <= 60; age += 5 {
			it := models.Item{
				Name:           "t",
				TimeImportance: intPtr(urgency),
				Created:        now.AddDate(0, 0, -age),
			}
			got := Score(&it, now, FixedJitter(1.0))
			if got < prev {
				t.Fatalf("urgency %d: score at age %d (%v) below score at age %d (%v)",
					urgency, age, got, age-5, prev)
			}
			prev = got
		}
	}
}

func TestScore_DeadlineOnlyPeaksAtDeadline(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	atDeadline := models.Item{Name: "now", Created: now, Deadline: timePtr(now)}
	nextWeek := models.Item{Name: "later", Created: now, Deadline: timePtr(now.AddDate(0, 0, 7))}
	lastWeek := models.Item{Name: "past", Created: now, Deadline: timePtr(now.AddDate(0, 0, -7))}

	peak := Score(&atDeadline, now, FixedJitter(1.0))
	if peak != SentinelScore {
		t.Errorf("Score(at deadline) = %v, want %v", peak, float32(SentinelScore))
	}
	if s := Score(&nextWeek, now, FixedJitter(1.0)); s >= peak {
		t.Errorf("Score(+7d) = %v, want < %v", s, peak)
	}
	if s := Score(&lastWeek, now, FixedJitter(1.0)); s >= peak {
		t.Errorf("Score(-7d) = %v, want < %v", s, peak)
	}
}

func TestClockJitter_Bounds(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		j := ClockJitter()
		if j < 1.0 || j >= 1.1 {
			t.Fatalf("ClockJitter() = %v, want in [1.0, 1.1)", j)
		}
	}
}

func TestSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score float32
		want  int
	}{
		{name: "negative clamps to zero", score: -3.5, want: 0},
		{name: "zero stays zero", score: 0, want: 0},
		{name: "truncates fraction", score: 41.9, want: 41},
		{name: "saturates at uint16 max", score: 1e9, want: math.MaxUint16},
		{name: "exact max", score: math.MaxUint16, want: math.MaxUint16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SortKey(tt.score); got != tt.want {
				t.Errorf("SortKey(%v) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}
