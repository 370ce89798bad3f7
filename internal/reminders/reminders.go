// Package reminders answers questions about note reminder schedules. It
// never schedules anything itself; the presentation layer decides how to
// surface due notes.
package reminders

import (
	"sort"
	"time"

	"quicknotes/internal/notes"
)

// Due returns the notes whose reminder is enabled and already past, soonest
// first.
func Due(list []*notes.Note, now time.Time) []*notes.Note {
	var due []*notes.Note
	for _, n := range list {
		if n.NotificationsEnabled && n.NotificationDate != nil && !n.NotificationDate.After(now) {
			due = append(due, n)
		}
	}
	sortByReminder(due)
	return due
}

// Upcoming returns the notes whose reminder falls inside (now, now+window],
// soonest first.
func Upcoming(list []*notes.Note, now time.Time, window time.Duration) []*notes.Note {
	limit := now.Add(window)
	var upcoming []*notes.Note
	for _, n := range list {
		if !n.NotificationsEnabled || n.NotificationDate == nil {
			continue
		}
		if n.NotificationDate.After(now) && !n.NotificationDate.After(limit) {
			upcoming = append(upcoming, n)
		}
	}
	sortByReminder(upcoming)
	return upcoming
}

// Scheduled returns every note with an enabled reminder, soonest first.
func Scheduled(list []*notes.Note) []*notes.Note {
	var scheduled []*notes.Note
	for _, n := range list {
		if n.NotificationsEnabled && n.NotificationDate != nil {
			scheduled = append(scheduled, n)
		}
	}
	sortByReminder(scheduled)
	return scheduled
}

func sortByReminder(list []*notes.Note) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].NotificationDate.Before(*list[j].NotificationDate)
	})
}
