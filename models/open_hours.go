package models

// OpenHoursRow is one raw per-weekday opening window as stored upstream.
// Any nil field means "unknown"; such rows contribute no interval.
// Multiple rows per weekday are legal (split hours), and close < open means the
// window spans midnight.
type OpenHoursRow struct {
	Day         *int `json:"day"` // 0=Sunday .. 6=Saturday
	OpenHour    *int `json:"open_hour"`
	OpenMinute  *int `json:"open_minute"`
	CloseHour   *int `json:"close_hour"`
	CloseMinute *int `json:"close_minute"`
}
