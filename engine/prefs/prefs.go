package prefs

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"tp-server/engine/themes"
	"tp-server/engine/timeutil"
	"tp-server/models"
)

// Pace buckets describe how densely a traveler likes their days packed.
type Pace string

const (
	PACE_RELAXED  Pace = "relaxed"
	PACE_BALANCED Pace = "balanced"
	PACE_PACKED   Pace = "packed"
)

// Hard defaults applied when neither explicit nor inferred values exist.
const (
	DEFAULT_DAY_START_MIN = 540  // 09:00
	DEFAULT_DAY_END_MIN   = 1260 // 21:00
	DEFAULT_TRAVEL_MODE   = "walking"
)

// DAY_WINDOW_BUFFER_MIN pads the observed earliest/latest times when inferring
// a day window from history.
const DAY_WINDOW_BUFFER_MIN = 60

// Profile is a pace/day-window/interest profile. Zero values (empty Pace,
// zero minutes, nil interests) mean "unset" and lose to the other side of a
// merge.
type Profile struct {
	Pace        Pace     `json:"pace,omitempty"`
	DayStartMin int      `json:"day_start_min,omitempty"`
	DayEndMin   int      `json:"day_end_min,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	TravelMode  string   `json:"travel_mode,omitempty"`
}

// InferFromHistory derives a profile from previously scheduled activities: the
// day window from observed start/end extremes with a buffer, pace from average
// activities per scheduled day, and interests from observed theme counts.
func InferFromHistory(activities []models.ItineraryActivity) Profile {
	var profile Profile

	earliest, latest := -1, -1
	perDay := map[string]int{}
	themeCounts := map[themes.Theme]int{}
	for i := range activities {
		a := &activities[i]
		for _, theme := range themes.ClassifyTypes(a.Activity.Types) {
			themeCounts[theme]++
		}
		if !a.IsScheduled() {
			continue
		}
		startMin, sok := timeutil.ParseClock(*a.StartTime)
		endMin, eok := timeutil.ParseClock(*a.EndTime)
		if !sok || !eok {
			continue
		}
		perDay[*a.Date]++
		if earliest < 0 || startMin < earliest {
			earliest = startMin
		}
		if endMin > latest {
			latest = endMin
		}
	}

	if earliest >= 0 {
		profile.DayStartMin = maxInt(0, earliest-DAY_WINDOW_BUFFER_MIN)
		profile.DayEndMin = minInt(timeutil.MINUTES_PER_DAY, latest+DAY_WINDOW_BUFFER_MIN)
	}

	if len(perDay) > 0 {
		total := 0
		for _, n := range perDay {
			total += n
		}
		avg := float64(total) / float64(len(perDay))
		switch {
		case avg >= 5:
			profile.Pace = PACE_PACKED
		case avg >= 3:
			profile.Pace = PACE_BALANCED
		default:
			profile.Pace = PACE_RELAXED
		}
	}

	for _, theme := range themes.RankByCount(themeCounts) {
		profile.Interests = append(profile.Interests, string(theme))
	}
	return profile
}

var pacePatterns = []struct {
	pace    Pace
	pattern *regexp.Regexp
}{
	{PACE_PACKED, regexp.MustCompile(`(?i)\b(packed|busy|intense|fast-paced|as much as possible|fit everything)\b`)},
	{PACE_RELAXED, regexp.MustCompile(`(?i)\b(relax(ed|ing)?|easy|slow|chill|leisurely|laid-back)\b`)},
	{PACE_BALANCED, regexp.MustCompile(`(?i)\b(balanced|moderate)\b`)},
}

var travelModePatterns = []struct {
	mode    string
	pattern *regexp.Regexp
}{
	{"walking", regexp.MustCompile(`(?i)\b(walk(ing)?|on foot)\b`)},
	{"driving", regexp.MustCompile(`(?i)\b(driv(e|ing)|car|rental)\b`)},
	{"transit", regexp.MustCompile(`(?i)\b(transit|metro|subway|bus|train)\b`)},
}

// ExtractFromMessage pulls explicit preference hints out of free text. The
// text is untrusted plain input; it is only ever matched against fixed
// keyword patterns.
func ExtractFromMessage(text string) Profile {
	var profile Profile
	for _, pp := range pacePatterns {
		if pp.pattern.MatchString(text) {
			profile.Pace = pp.pace
			break
		}
	}
	for _, tm := range travelModePatterns {
		if tm.pattern.MatchString(text) {
			profile.TravelMode = tm.mode
			break
		}
	}

	for _, theme := range themes.MatchKeywords(text) {
		profile.Interests = append(profile.Interests, string(theme))
	}
	sort.Strings(profile.Interests)
	return profile
}

// Merge combines profiles field by field: explicit values always win, unset
// explicit fields fall back to inferred values, then to hard defaults.
func Merge(explicit, inferred Profile) Profile {
	merged := Profile{
		Pace:        PACE_BALANCED,
		DayStartMin: DEFAULT_DAY_START_MIN,
		DayEndMin:   DEFAULT_DAY_END_MIN,
		TravelMode:  DEFAULT_TRAVEL_MODE,
	}
	if inferred.Pace != "" {
		merged.Pace = inferred.Pace
	}
	if explicit.Pace != "" {
		merged.Pace = explicit.Pace
	}
	if inferred.DayStartMin > 0 || inferred.DayEndMin > 0 {
		merged.DayStartMin = inferred.DayStartMin
		merged.DayEndMin = inferred.DayEndMin
	}
	if explicit.DayStartMin > 0 || explicit.DayEndMin > 0 {
		merged.DayStartMin = explicit.DayStartMin
		merged.DayEndMin = explicit.DayEndMin
	}
	if len(inferred.Interests) > 0 {
		merged.Interests = inferred.Interests
	}
	if len(explicit.Interests) > 0 {
		merged.Interests = explicit.Interests
	}
	if inferred.TravelMode != "" {
		merged.TravelMode = inferred.TravelMode
	}
	if explicit.TravelMode != "" {
		merged.TravelMode = explicit.TravelMode
	}
	return merged
}

// Describe renders the profile as a one-line summary suitable for prompting.
func (p Profile) Describe() string {
	interests := "none stated"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}
	return fmt.Sprintf("pace=%s, day window %s-%s, travel by %s, interests: %s",
		p.Pace,
		timeutil.FormatClock(p.DayStartMin), timeutil.FormatClock(p.DayEndMin),
		p.TravelMode, interests)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
