// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// DefaultDateLayout is the short month/day/year layout used for bucket
// labels older than yesterday.
const DefaultDateLayout = "1/2/2006"

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// Bucket is a run of messages sharing one local calendar day.
type Bucket struct {
	Label    string
	Day      time.Time // local midnight
	Messages []*Message
}

// ShowAvatar reports whether the message at i starts a new run of the same
// sender and so gets an avatar.
func (b Bucket) ShowAvatar(i int) bool {
	if i <= 0 || i >= len(b.Messages) {
		return i == 0
	}
	return b.Messages[i-1].Sender != b.Messages[i].Sender
}

// Continues reports whether the message at i follows one from the same
// sender.
func (b Bucket) Continues(i int) bool {
	if i <= 0 || i >= len(b.Messages) {
		return false
	}
	return !b.ShowAvatar(i)
}

// GroupByDate partitions msgs by the local calendar day of their timestamp.
// Buckets appear in order of first occurrence and keep message order.
// An empty layout falls back to DefaultDateLayout.
func GroupByDate(msgs []*Message, now time.Time, layout string) []Bucket {
	if layout == "" {
		layout = DefaultDateLayout
	}

	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	var buckets []Bucket
	index := make(map[time.Time]int)

	for _, m := range msgs {
		if m == nil {
			continue
		}
		day := startOfDay(m.Timestamp)
		if i, ok := index[day]; ok {
			buckets[i].Messages = append(buckets[i].Messages, m)
			continue
		}
		index[day] = len(buckets)
		buckets = append(buckets, Bucket{
			Label:    DayLabel(day, today, yesterday, layout),
			Day:      day,
			Messages: []*Message{m},
		})
	}
	return buckets
}

// DayLabel names a local midnight relative to today and yesterday.
func DayLabel(day, today, yesterday time.Time, layout string) string {
	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(yesterday):
		return LabelYesterday
	default:
		return day.Format(layout)
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
