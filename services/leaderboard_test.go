package services

import (
	"testing"
	"time"

	"marketplace-gamification/models"
)

func TestPeriodWindowWeekly(t *testing.T) {
	// Thursday 2026-03-12
	now := time.Date(2026, time.March, 12, 15, 30, 0, 0, time.Local)

	start, end := periodWindow(models.PeriodWeekly, now)

	wantStart := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.Local) // Sunday
	if !start.Equal(wantStart) {
		t.Errorf("weekly start = %v, want %v", start, wantStart)
	}
	if start.Weekday() != time.Sunday {
		t.Errorf("weekly start must be a Sunday, got %v", start.Weekday())
	}

	wantEnd := time.Date(2026, time.March, 12, 23, 59, 59, 999000000, time.Local)
	if !end.Equal(wantEnd) {
		t.Errorf("weekly end = %v, want %v", end, wantEnd)
	}
}

func TestPeriodWindowWeeklyOnSunday(t *testing.T) {
	// A Sunday itself starts a fresh window
	now := time.Date(2026, time.March, 8, 9, 0, 0, 0, time.Local)
	start, _ := periodWindow(models.PeriodWeekly, now)
	want := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Errorf("weekly start on a Sunday = %v, want %v", start, want)
	}
}

func TestPeriodWindowMonthly(t *testing.T) {
	now := time.Date(2026, time.March, 12, 15, 30, 0, 0, time.Local)
	start, _ := periodWindow(models.PeriodMonthly, now)
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Errorf("monthly start = %v, want %v", start, want)
	}
}

func TestPeriodWindowAllTime(t *testing.T) {
	now := time.Date(2026, time.March, 12, 15, 30, 0, 0, time.Local)
	start, end := periodWindow(models.PeriodAllTime, now)
	if !start.Equal(allTimeEpoch) {
		t.Errorf("all_time start = %v, want epoch floor %v", start, allTimeEpoch)
	}
	if end.Before(now) {
		t.Errorf("all_time end %v must not precede now %v", end, now)
	}
}

func TestRankEntriesDense(t *testing.T) {
	rows := []aggRow{
		{UserID: "a", Score: 900},
		{UserID: "b", Score: 500},
		{UserID: "c", Score: 500}, // tie with b, broken by aggregate sort order
		{UserID: "d", Score: 10},
	}
	start := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.March, 12, 23, 59, 59, 999000000, time.Local)

	entries := rankEntries(rows, models.PeriodWeekly, models.CategoryBuyerXP, start, end)

	if len(entries) != len(rows) {
		t.Fatalf("got %d entries, want %d", len(entries), len(rows))
	}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Errorf("entry %d has rank %d, want dense sequence", i, entry.Rank)
		}
		if entry.UserID != rows[i].UserID || entry.Score != rows[i].Score {
			t.Errorf("entry %d does not preserve aggregate order: %+v", i, entry)
		}
		if !entry.PeriodStart.Equal(start) || !entry.PeriodEnd.Equal(end) {
			t.Errorf("entry %d window mismatch: %+v", i, entry)
		}
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	entries := rankEntries(nil, models.PeriodMonthly, models.CategoryReviewer, time.Now(), time.Now())
	if len(entries) != 0 {
		t.Errorf("empty aggregate must produce no entries, got %d", len(entries))
	}
}
