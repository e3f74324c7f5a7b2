// Package scoring maps one active item plus "now" to a single urgency score.
// Higher means more urgent. The functions here are pure and safe to call
// concurrently for distinct items.
package scoring

import (
	"math"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

// SentinelScore is returned for items with no importance signal and no
// deadline. It is larger than any well-formed item's score so broken entries
// sort first and are visible as errors instead of being silently dropped.
const SentinelScore = 1_000_000_000.0

// Jitter produces a multiplier in [1.0, 1.1) applied to every score to break
// exact ties between items scored in the same pass. It is intentionally small
// enough that it cannot reorder items whose truncated scores differ.
type Jitter func() float32

// ClockJitter derives the multiplier from the wall clock's sub-second
// component. Ties therefore resolve pseudo-randomly, not deterministically;
// tests inject a fixed Jitter instead.
func ClockJitter() float32 {
	millis := time.Now().Nanosecond() / int(time.Millisecond)
	return 1.0 + float32(millis)/10000.0
}

// FixedJitter returns a Jitter that always yields v. Intended for tests.
func FixedJitter(v float32) Jitter {
	return func() float32 { return v }
}

// Score computes the urgency of an item at the given time. It never fails and
// never returns NaN or an infinity; degenerate inputs (overdue deadlines,
// deadlines before creation) are just negative day counts, and the exponential
// curves are capped at the sentinel so extreme deadlines cannot overflow.
func Score(it *models.Item, now time.Time, jitter Jitter) float32 {
	var score float64

	switch it.Classify() {
	case models.ScoreDeadlineWithImportance:
		days := wholeDays(it.Deadline.Sub(now))
		switch *it.Importance {
		case 4:
			score = math.Pow(1.2, -0.5*days+20.0) + 5.0
		case 3:
			score = math.Pow(1.17, -0.5*days+20.0) + 5.0
		case 2:
			score = 0.1747502645671*days + 11.3587671968606
		case 1:
			score = 0.0965675735297*days + 6.276892278847
		default:
			score = 0.0402194752135*days + 2.6142658953751
		}

	case models.ScoreTimeUrgencyOnly:
		days := wholeDays(now.Sub(it.Created))
		switch *it.TimeImportance {
		case 2:
			score = math.Pow(1.15, 0.4*days+20.0) - 5.0
		case 1:
			score = 0.5403960772338*days + 8.3798162245677
		default:
			score = 0.0440665332331*days + 0.6833311078751
		}

	case models.ScoreDeadlineOnly:
		// The +1 keeps the denominator away from zero, so the imminent item
		// dominates while far-off items fall away without ever reaching zero.
		until := math.Abs(wholeDays(it.Deadline.Sub(now))) + 1.0
		score = SentinelScore / until

	default:
		score = SentinelScore
	}

	if score > SentinelScore {
		score = SentinelScore
	}
	return float32(score) * jitter()
}

// SortKey truncates a score into the integer key the planner orders tasks by.
// Saturating at the uint16 range keeps the jitter term from mattering at the
// margin and keeps the sentinel finite.
func SortKey(score float32) int {
	if score <= 0 {
		return 0
	}
	if score >= math.MaxUint16 {
		return math.MaxUint16
	}
	return int(score)
}

// wholeDays converts a duration to fractional days with whole-hour resolution.
func wholeDays(d time.Duration) float64 {
	return float64(int64(d.Hours())) / 24.0
}
