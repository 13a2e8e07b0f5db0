package overlap

import (
	"fmt"
	"sort"

	"tp-server/engine/timeutil"
	"tp-server/models"
)

// Warning cap bounds. The default keeps conversational responses readable.
const (
	DEFAULT_MAX_WARNINGS = 8
	MIN_MAX_WARNINGS     = 1
	MAX_MAX_WARNINGS     = 25
)

type block struct {
	title    string
	kind     string
	startMin int
	endMin   int
}

type plannedItem struct {
	id       string
	name     string
	date     string
	startMin int
	endMin   int
}

// BuildWarnings reports every overlap between planned activities and fixed
// trip blocks on the same date as a human-readable line, capped at
// maxWarnings (clamped to [1,25], 0 meaning the default). Once the cap is hit,
// remaining overlaps are counted and summarized in one trailing line. Rows
// with unparseable times are skipped.
func BuildWarnings(activities []models.ItineraryActivity, events []models.CustomEvent, maxWarnings int) []string {
	if maxWarnings <= 0 {
		maxWarnings = DEFAULT_MAX_WARNINGS
	}
	if maxWarnings < MIN_MAX_WARNINGS {
		maxWarnings = MIN_MAX_WARNINGS
	}
	if maxWarnings > MAX_MAX_WARNINGS {
		maxWarnings = MAX_MAX_WARNINGS
	}

	blocksByDate := indexBlocks(events)
	items := collectItems(activities, blocksByDate)

	var warnings []string
	suppressed := 0
	for _, item := range items {
		for _, b := range blocksByDate[item.date] {
			// Half-open interval overlap.
			if item.startMin < b.endMin && item.endMin > b.startMin {
				if len(warnings) >= maxWarnings {
					suppressed++
					continue
				}
				warnings = append(warnings, fmt.Sprintf(
					"%q (%s-%s) overlaps %s %q (%s-%s) on %s",
					item.name,
					timeutil.FormatClock(item.startMin), timeutil.FormatClock(item.endMin),
					b.kind, b.title,
					timeutil.FormatClock(b.startMin), timeutil.FormatClock(b.endMin),
					item.date,
				))
			}
		}
	}
	if suppressed > 0 {
		warnings = append(warnings, fmt.Sprintf("...omitted for %d other item(s).", suppressed))
	}
	return warnings
}

// indexBlocks groups trip blocks by date, sorted by start, end, then title so
// warning order is deterministic.
func indexBlocks(events []models.CustomEvent) map[string][]block {
	byDate := map[string][]block{}
	for _, e := range events {
		startMin, sok := timeutil.ParseClock(e.StartTime)
		endMin, eok := timeutil.ParseClock(e.EndTime)
		if !sok || !eok || endMin <= startMin {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], block{
			title: e.Title, kind: e.Kind, startMin: startMin, endMin: endMin,
		})
	}
	for date := range byDate {
		blocks := byDate[date]
		sort.Slice(blocks, func(i, j int) bool {
			if blocks[i].startMin != blocks[j].startMin {
				return blocks[i].startMin < blocks[j].startMin
			}
			if blocks[i].endMin != blocks[j].endMin {
				return blocks[i].endMin < blocks[j].endMin
			}
			return blocks[i].title < blocks[j].title
		})
		byDate[date] = blocks
	}
	return byDate
}

func collectItems(activities []models.ItineraryActivity, blocksByDate map[string][]block) []plannedItem {
	var items []plannedItem
	for i := range activities {
		a := &activities[i]
		if !a.IsScheduled() {
			continue
		}
		if _, ok := blocksByDate[*a.Date]; !ok {
			continue
		}
		startMin, sok := timeutil.ParseClock(*a.StartTime)
		endMin, eok := timeutil.ParseClock(*a.EndTime)
		if !sok || !eok || endMin <= startMin {
			continue
		}
		name := a.Activity.Name
		if name == "" {
			name = a.ID
		}
		items = append(items, plannedItem{
			id: a.ID, name: name, date: *a.Date, startMin: startMin, endMin: endMin,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].date != items[j].date {
			return items[i].date < items[j].date
		}
		if items[i].startMin != items[j].startMin {
			return items[i].startMin < items[j].startMin
		}
		return items[i].id < items[j].id
	})
	return items
}
