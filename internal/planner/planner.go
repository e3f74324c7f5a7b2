// Package planner owns the active set of tasks and events and derives the two
// views the rest of the system consumes: the priority-ordered item list and
// the dense multi-week calendar. Aggregation is always a full recomputation
// from the current active set; there is no incremental state to go stale.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/scoring"
)

// ErrNotFound is returned when a named item is not in the active set.
var ErrNotFound = errors.New("item not found")

// HighlightedPerDay caps how many headline entries a day cell shows.
const HighlightedPerDay = 3

// Store is the persistence collaborator. Implementations must make active-set
// writes atomic; see storage.FileStore.
type Store interface {
	LoadActive() ([]models.Item, error)
	SaveActive(items []models.Item) error
	AppendArchived(item models.ArchivedItem) error
	ReadArchived(offset, limit int) ([]models.ArchivedItem, error)
}

// Summary is the result of one aggregation pass.
type Summary struct {
	// Cells holds exactly 7*weeks day cells, Monday-first.
	Cells []models.DayCell `json:"cells"`
	// MonthSwitches has one entry per week row; nil when the row contains no
	// first-of-month.
	MonthSwitches []*models.MonthBoundary `json:"month_switches"`
	// Tasks is the non-event subset of the active set in priority order.
	Tasks []models.Item `json:"tasks"`
}

// Planner is the single authoritative handle on the active set. All methods
// are safe for concurrent use; aggregation both reads and rewrites the
// canonical ordering, so everything funnels through one mutex.
type Planner struct {
	mu     sync.Mutex
	store  Store
	log    *zap.Logger
	jitter scoring.Jitter
	items  []models.Item
	weeks  int
}

// Option configures a Planner.
type Option func(*Planner)

// WithJitter replaces the tie-breaking jitter source. Tests use this to make
// score ordering deterministic.
func WithJitter(j scoring.Jitter) Option {
	return func(p *Planner) { p.jitter = j }
}

// New loads the active set from the store and returns a planner showing the
// given number of weeks.
func New(store Store, weeks int, log *zap.Logger, opts ...Option) (*Planner, error) {
	items, err := store.LoadActive()
	if err != nil {
		return nil, fmt.Errorf("load active set: %w", err)
	}
	p := &Planner{
		store:  store,
		log:    log,
		jitter: scoring.ClockJitter,
		items:  items,
		weeks:  weeks,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SetWeeks changes how many weeks Summarize covers.
func (p *Planner) SetWeeks(weeks int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.weeks = weeks
}

// NameIsUnique reports whether no active item carries the given name.
func (p *Planner) NameIsUnique(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].Name == name {
			return false
		}
	}
	return true
}

// Items returns a copy of the active set in its current canonical order.
func (p *Planner) Items() []models.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Item, len(p.items))
	copy(out, p.items)
	return out
}

// Summarize recomputes the calendar and the priority ordering for the planner's
// configured number of weeks.
func (p *Planner) Summarize(now time.Time) Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summarizeLocked(now, p.weeks)
}

// SummarizeWeeks is Summarize with an explicit week count, used when a caller
// asks for a different window without changing the configured one.
func (p *Planner) SummarizeWeeks(now time.Time, weeks int) Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summarizeLocked(now, weeks)
}

// Add appends a new item, persists, and re-aggregates. Name uniqueness is the
// caller's responsibility. The in-memory mutation always applies; only the
// persistence error is reported.
func (p *Planner) Add(item models.Item, now time.Time) (Summary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = append(p.items, item)
	summary := p.summarizeLocked(now, p.weeks)

	if err := p.store.SaveActive(p.items); err != nil {
		return summary, fmt.Errorf("save active set: %w", err)
	}
	return summary, nil
}

// Complete archives the named item, removes it from the active set, persists
// both changes, and re-aggregates. If persistence fails the in-memory state is
// still updated and the error is returned for the caller to surface.
func (p *Planner) Complete(name string, now time.Time) (Summary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := -1
	for i := range p.items {
		if p.items[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p.summarizeLocked(now, p.weeks), ErrNotFound
	}

	archived := p.items[idx].Archive(now)
	archiveErr := p.store.AppendArchived(archived)
	if archiveErr != nil {
		archiveErr = fmt.Errorf("append archive: %w", archiveErr)
		p.log.Error("archive_append_failed", zap.String("name", name), zap.Error(archiveErr))
	}

	p.items = append(p.items[:idx], p.items[idx+1:]...)
	summary := p.summarizeLocked(now, p.weeks)

	var saveErr error
	if err := p.store.SaveActive(p.items); err != nil {
		saveErr = fmt.Errorf("save active set: %w", err)
	}
	return summary, errors.Join(archiveErr, saveErr)
}

// Delete removes exactly the named item, persists, and re-aggregates. Same
// failure semantics as Complete.
func (p *Planner) Delete(name string, now time.Time) (Summary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.items[:0]
	removed := false
	for _, it := range p.items {
		if it.Name == name {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	p.items = kept

	summary := p.summarizeLocked(now, p.weeks)
	if !removed {
		return summary, ErrNotFound
	}
	if err := p.store.SaveActive(p.items); err != nil {
		return summary, fmt.Errorf("save active set: %w", err)
	}
	return summary, nil
}

// summarizeLocked implements the aggregation pass. It rewrites p.items into
// canonical order (events sorted by deadline, then tasks sorted by score) as a
// side effect; that order is what gets persisted.
func (p *Planner) summarizeLocked(now time.Time, weeks int) Summary {
	var events, tasks []models.Item
	for _, it := range p.items {
		if it.IsEvent {
			events = append(events, it)
		} else {
			tasks = append(tasks, it)
		}
	}

	for i := range events {
		if events[i].Deadline == nil {
			panic(fmt.Sprintf("planner: event %q without a deadline", events[i].Name))
		}
	}
	sort.SliceStable(events, func(a, b int) bool {
		return events[a].Deadline.Before(*events[b].Deadline)
	})

	// Integer sort keys keep the jitter term from flipping near-ties.
	keys := make(map[string]int, len(tasks))
	for i := range tasks {
		keys[tasks[i].Name] = scoring.SortKey(scoring.Score(&tasks[i], now, p.jitter))
	}
	sort.SliceStable(tasks, func(a, b int) bool {
		return keys[tasks[a].Name] > keys[tasks[b].Name]
	})

	var deadlineTasks []models.Item
	for _, t := range tasks {
		if t.Deadline != nil {
			deadlineTasks = append(deadlineTasks, t)
		}
	}

	p.items = p.items[:0]
	p.items = append(p.items, events...)
	p.items = append(p.items, tasks...)

	monday := weekStart(now)
	today := dateOf(now)

	cells := make([]models.DayCell, 0, weeks*7)
	switches := make([]*models.MonthBoundary, 0, weeks)

	for week := 0; week < weeks; week++ {
		var boundary *models.MonthBoundary
		for day := 0; day < 7; day++ {
			current := monday.AddDate(0, 0, week*7+day)

			if current.Day() == 1 {
				prev := current.AddDate(0, 0, -2)
				// Only the last transition in a row is kept; with 7-day rows
				// there can only be one, but stay defensive.
				boundary = &models.MonthBoundary{
					PrevMonth: prev.Month().String(),
					NextMonth: current.Month().String(),
				}
			}

			dayEvents := dueOn(events, current)
			dayTasks := dueOn(deadlineTasks, current)

			chosen := make([]models.Item, 0, HighlightedPerDay)
			for _, e := range dayEvents {
				if len(chosen) == HighlightedPerDay {
					break
				}
				chosen = append(chosen, e)
			}
			for _, t := range dayTasks {
				if len(chosen) == HighlightedPerDay {
					break
				}
				chosen = append(chosen, t)
			}
			sort.SliceStable(chosen, func(a, b int) bool {
				return chosen[a].Deadline.Before(*chosen[b].Deadline)
			})

			highlighted := make([]models.CellEntry, 0, len(chosen))
			for i := range chosen {
				highlighted = append(highlighted, models.CellEntry{
					Label:      chosen[i].Name,
					Time:       chosen[i].Deadline.Format("15:04"),
					ColorClass: chosen[i].ColorClass(),
				})
			}

			allForDay := make([]models.Item, 0, len(dayEvents)+len(dayTasks))
			allForDay = append(allForDay, dayEvents...)
			allForDay = append(allForDay, dayTasks...)
			sort.SliceStable(allForDay, func(a, b int) bool {
				return allForDay[a].Deadline.Before(*allForDay[b].Deadline)
			})

			fullList := make([]models.DayEntry, 0, len(allForDay))
			for i := range allForDay {
				fullList = append(fullList, models.DayEntry{
					Label:   allForDay[i].Name,
					Time:    allForDay[i].Deadline.Format("15:04"),
					IsEvent: allForDay[i].IsEvent,
				})
			}

			cells = append(cells, models.DayCell{
				DayOfMonth:  current.Day(),
				Highlighted: highlighted,
				FullList:    fullList,
				IsToday:     current.Equal(today),
				Date:        current,
				DayLabel:    fmt.Sprintf("%d", current.Day()),
			})
		}
		switches = append(switches, boundary)
	}

	taskView := make([]models.Item, len(tasks))
	copy(taskView, tasks)

	return Summary{Cells: cells, MonthSwitches: switches, Tasks: taskView}
}

// dueOn filters items whose deadline falls on the given civil date. Deadlines
// are interpreted in the date's location so mixed-zone timestamps still land
// on the right cell.
func dueOn(items []models.Item, date time.Time) []models.Item {
	var out []models.Item
	for _, it := range items {
		if it.Deadline == nil {
			continue
		}
		dl := it.Deadline.In(date.Location())
		if dl.Year() == date.Year() && dl.Month() == date.Month() && dl.Day() == date.Day() {
			out = append(out, it)
		}
	}
	return out
}

// weekStart returns midnight of the Monday of the week containing t.
func weekStart(t time.Time) time.Time {
	d := dateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// dateOf truncates a timestamp to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
