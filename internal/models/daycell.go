package models

import "time"

// CellEntry is one of the up-to-three headline entries a day cell shows.
type CellEntry struct {
	Label      string `json:"label"`
	Time       string `json:"time"`
	ColorClass int    `json:"color_class"`
}

// DayEntry is one row of a day cell's complete item list.
type DayEntry struct {
	Label   string `json:"label"`
	Time    string `json:"time"`
	IsEvent bool   `json:"is_event"`
}

// DayCell is the derived summary of a single calendar date. Cells are rebuilt
// wholesale on every aggregation pass and hold no references into the active set.
type DayCell struct {
	DayOfMonth  int         `json:"day_of_month"`
	Highlighted []CellEntry `json:"highlighted"`
	FullList    []DayEntry  `json:"full_list"`
	IsToday     bool        `json:"is_today"`
	Date        time.Time   `json:"date"`
	DayLabel    string      `json:"day_label"`
}

// MonthBoundary marks a week row containing the first day of a month.
type MonthBoundary struct {
	PrevMonth string `json:"prev_month"`
	NextMonth string `json:"next_month"`
}
