package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreCase identifies which urgency curve applies to an item, based on which
// optional fields are set. It is computed once per item so the scoring code can
// switch exhaustively instead of chaining nil checks.
type ScoreCase int

const (
	// ScoreDeadlineWithImportance covers deadline-bound tasks with an importance class.
	ScoreDeadlineWithImportance ScoreCase = iota
	// ScoreTimeUrgencyOnly covers tasks without a deadline but with a time-urgency class.
	ScoreTimeUrgencyOnly
	// ScoreDeadlineOnly covers items that carry a deadline but no classification.
	ScoreDeadlineOnly
	// ScoreMalformed covers items with no usable signal at all. These must surface
	// loudly, not disappear.
	ScoreMalformed
)

const (
	// MaxImportance is the highest importance class for deadline-bound tasks.
	MaxImportance = 4
	// MaxTimeImportance is the highest time-urgency class for deadline-less tasks.
	MaxTimeImportance = 2
)

// Item is an active task or event. Name uniqueness is enforced by the owner of
// the active set, not here. Events always carry a deadline and no importance
// fields; the planner treats an event without a deadline as a contract violation.
type Item struct {
	Name           string     `json:"name"`
	Importance     *int       `json:"importance"`
	TimeImportance *int       `json:"time_importance"`
	Created        time.Time  `json:"created"`
	Deadline       *time.Time `json:"deadline"`
	IsEvent        bool       `json:"is_event"`
}

// Classify maps field presence to the score case. The order mirrors the
// priority the curves are evaluated in: importance plus deadline wins, then a
// time-urgency class, then a bare deadline, then the malformed fallback.
func (it *Item) Classify() ScoreCase {
	switch {
	case it.Importance != nil && it.Deadline != nil:
		return ScoreDeadlineWithImportance
	case it.TimeImportance != nil:
		return ScoreTimeUrgencyOnly
	case it.Importance == nil && it.Deadline != nil:
		return ScoreDeadlineOnly
	default:
		return ScoreMalformed
	}
}

// ColorClass returns the palette slot for calendar rendering: events use the
// dedicated event slot, otherwise the item's class index.
func (it *Item) ColorClass() int {
	switch {
	case it.IsEvent:
		return 5
	case it.Importance != nil:
		return *it.Importance
	case it.TimeImportance != nil:
		return *it.TimeImportance
	default:
		return 0
	}
}

// Archive converts the item into its terminal archived projection.
func (it *Item) Archive(now time.Time) ArchivedItem {
	return ArchivedItem{
		ID:         uuid.New(),
		Name:       it.Name,
		Importance: it.Importance,
		Created:    it.Created,
		Deadline:   it.Deadline,
		IsEvent:    it.IsEvent,
		ArchivedAt: now,
	}
}

// ArchivedItem is the append-only record written when an item is completed.
// It is never mutated or deleted.
type ArchivedItem struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Importance *int       `json:"importance"`
	Created    time.Time  `json:"created"`
	Deadline   *time.Time `json:"deadline"`
	IsEvent    bool       `json:"is_event"`
	ArchivedAt time.Time  `json:"archived_at"`
}
