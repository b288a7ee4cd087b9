package dispatch

import "github.com/dakotasky/weather-backend/internal/models"

// QuietHoursAllow reports whether a notification may be delivered at the
// given local hour. Nil preferences mean the user never configured any,
// which permits everything. The blocked window is inclusive on both ends
// and may wrap past midnight (startHour > endHour blocks
// [startHour,23] and [0,endHour]).
//
// The hour is the dispatcher's local wall-clock hour, not adjusted to the
// user's timezone.
func QuietHoursAllow(prefs *models.NotificationPreferences, hour int) bool {
	if prefs == nil || !prefs.DNDEnabled {
		return true
	}
	start, end := prefs.DNDStartHour, prefs.DNDEndHour
	if start <= end {
		return hour < start || hour > end
	}
	return hour < start && hour > end
}
