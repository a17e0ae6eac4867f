package services

import (
	"reflect"
	"testing"
)

func TestMilestonesCrossed(t *testing.T) {
	tests := []struct {
		name     string
		oldLevel int
		newLevel int
		want     []int
	}{
		{"no milestone in range", 1, 5, nil},
		{"single boundary", 9, 10, []int{10}},
		{"jump over two milestones", 9, 26, []int{10, 25}},
		{"level cap milestone", 99, 100, []int{100}},
		{"no level change", 10, 10, nil},
		{"starting exactly on a milestone", 10, 12, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := milestonesCrossed(tt.oldLevel, tt.newLevel)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("milestonesCrossed(%d, %d) = %v, want %v",
					tt.oldLevel, tt.newLevel, got, tt.want)
			}
		})
	}
}

func TestMilestoneBonusAmounts(t *testing.T) {
	want := map[int]int64{10: 100, 25: 250, 50: 500, 75: 750, 100: 1000}
	for level, bonus := range want {
		if got := MilestoneCreditBonuses[level]; got != bonus {
			t.Errorf("MilestoneCreditBonuses[%d] = %d, want %d", level, got, bonus)
		}
	}
	if len(MilestoneCreditBonuses) != len(want) {
		t.Errorf("MilestoneCreditBonuses has %d entries, want %d",
			len(MilestoneCreditBonuses), len(want))
	}
}

func TestNewProgressRecordDefaults(t *testing.T) {
	prog := newProgressRecord("user-1")

	if prog.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", prog.UserID)
	}
	if prog.Level != 1 {
		t.Errorf("Level = %d, want 1", prog.Level)
	}
	if prog.TotalXP != 0 || prog.CurrentLevelXP != 0 {
		t.Errorf("fresh record has XP: total=%d current=%d", prog.TotalXP, prog.CurrentLevelXP)
	}
	if prog.NextLevelXP != xpToClearLevel(1) {
		t.Errorf("NextLevelXP = %d, want %d", prog.NextLevelXP, xpToClearLevel(1))
	}
	if prog.Title != TitleForLevel(1) {
		t.Errorf("Title = %q, want %q", prog.Title, TitleForLevel(1))
	}
}

func TestActivityPageLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 20},
		{-5, 20},
		{1, 1},
		{20, 20},
		{100, 100},
		{101, 20},
	}
	for _, tt := range tests {
		if got := ActivityPageLimit(tt.in); got != tt.want {
			t.Errorf("ActivityPageLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
