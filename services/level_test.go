package services

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name           string
		totalXP        int64
		level          int
		currentLevelXP int64
		nextLevelXP    int64
	}{
		{"zero xp", 0, 1, 0, 100},
		{"mid level one", 99, 1, 99, 100},
		{"exact level two boundary", 100, 2, 0, 282},
		{"inside level two", 125, 2, 25, 282},
		{"negative clamped", -50, 1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelForXP(tt.totalXP)
			if got.Level != tt.level || got.CurrentLevelXP != tt.currentLevelXP || got.NextLevelXP != tt.nextLevelXP {
				t.Errorf("LevelForXP(%d) = %+v, want level=%d currentLevelXP=%d nextLevelXP=%d",
					tt.totalXP, got, tt.level, tt.currentLevelXP, tt.nextLevelXP)
			}
		})
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := LevelForXP(0).Level
	for xp := int64(0); xp <= 2_000_000; xp += 997 {
		level := LevelForXP(xp).Level
		if level < prev {
			t.Fatalf("level decreased: LevelForXP(%d).Level = %d, previous %d", xp, level, prev)
		}
		prev = level
	}
}

func TestLevelForXPCap(t *testing.T) {
	got := LevelForXP(1 << 40)
	if got.Level != MaxLevel {
		t.Errorf("expected cap at %d, got %d", MaxLevel, got.Level)
	}
	if got.NextLevelXP != 0 {
		t.Errorf("expected NextLevelXP = 0 at cap, got %d", got.NextLevelXP)
	}
	if got.CurrentLevelXP <= 0 {
		t.Errorf("expected surplus CurrentLevelXP at cap, got %d", got.CurrentLevelXP)
	}
}

func TestTitleForLevel(t *testing.T) {
	tests := []struct {
		level int
		title string
	}{
		{1, "Newcomer"},
		{4, "Newcomer"},
		{5, "Explorer"},
		{9, "Explorer"},
		{10, "Enthusiast"},
		{19, "Enthusiast"},
		{20, "Expert"},
		{34, "Expert"},
		{35, "Master"},
		{49, "Master"},
		{50, "Legend"},
		{100, "Legend"},
	}
	for _, tt := range tests {
		if got := TitleForLevel(tt.level); got != tt.title {
			t.Errorf("TitleForLevel(%d) = %q, want %q", tt.level, got, tt.title)
		}
	}
}
