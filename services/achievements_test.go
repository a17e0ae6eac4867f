package services

import (
	"testing"
	"time"

	"marketplace-gamification/models"
)

func TestProgressFor(t *testing.T) {
	tests := []struct {
		name    string
		req     models.Requirement
		current float64
		want    float64
	}{
		{
			name:    "zero progress",
			req:     models.Requirement{Type: models.RequirementPurchaseCount, Threshold: 10},
			current: 0,
			want:    0,
		},
		{
			name:    "partial progress rounds to two decimals",
			req:     models.Requirement{Type: models.RequirementPurchaseCount, Threshold: 3},
			current: 1,
			want:    33.33,
		},
		{
			name:    "threshold boundary unlocks in same evaluation",
			req:     models.Requirement{Type: models.RequirementPurchaseCount, Threshold: 10},
			current: 10,
			want:    100,
		},
		{
			name:    "over threshold caps at 100",
			req:     models.Requirement{Type: models.RequirementTotalSpend, Threshold: 500},
			current: 9999,
			want:    100,
		},
		{
			name:    "time range hit is binary 100",
			req:     models.Requirement{Type: models.RequirementPurchaseTimeRange, StartHour: 0, EndHour: 5},
			current: 1,
			want:    100,
		},
		{
			name:    "time range miss is binary 0",
			req:     models.Requirement{Type: models.RequirementPurchaseTimeRange, StartHour: 0, EndHour: 5},
			current: 0,
			want:    0,
		},
		{
			name:    "zero threshold treated as met",
			req:     models.Requirement{Type: models.RequirementReviewCount, Threshold: 0},
			current: 0,
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressFor(tt.req, tt.current); got != tt.want {
				t.Errorf("progressFor(%+v, %v) = %v, want %v", tt.req, tt.current, got, tt.want)
			}
		})
	}
}

func TestProgressForMonotonicInValue(t *testing.T) {
	req := models.Requirement{Type: models.RequirementHelpfulVotes, Threshold: 50}
	prev := float64(-1)
	for v := float64(0); v <= 60; v++ {
		got := progressFor(req, v)
		if got < prev {
			t.Fatalf("progress decreased at value %v: %v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestMaskAchievement(t *testing.T) {
	unlockedAt := time.Now()

	secret := AchievementView{
		Slug: "night-owl", Name: "Night Owl", Description: "Buy at night",
		IconURL: "https://cdn.example.com/night-owl.svg", IsSecret: true, Progress: 40,
	}
	masked := MaskAchievement(secret)
	if masked.Name != "???" || masked.IconURL != "" || masked.Progress != 0 {
		t.Errorf("locked secret achievement not masked: %+v", masked)
	}
	if masked.Slug != "night-owl" {
		t.Errorf("slug must survive masking, got %q", masked.Slug)
	}

	secret.UnlockedAt = &unlockedAt
	unmasked := MaskAchievement(secret)
	if unmasked.Name != "Night Owl" || unmasked.Progress != 40 {
		t.Errorf("unlocked secret achievement should not be masked: %+v", unmasked)
	}

	public := AchievementView{Slug: "first-purchase", Name: "First Purchase", Progress: 75}
	if got := MaskAchievement(public); got != public {
		t.Errorf("non-secret achievement should pass through unchanged: %+v", got)
	}
}

func TestTriggerRequirementTypes(t *testing.T) {
	// Every requirement type must be reachable from exactly one trigger,
	// otherwise some achievements can never be evaluated.
	seen := map[models.RequirementType]models.TriggerCategory{}
	for trigger, types := range models.TriggerRequirementTypes {
		for _, reqType := range types {
			if prev, ok := seen[reqType]; ok {
				t.Errorf("requirement type %s mapped to both %s and %s", reqType, prev, trigger)
			}
			seen[reqType] = trigger
		}
	}

	all := []models.RequirementType{
		models.RequirementPurchaseCount, models.RequirementTotalSpend,
		models.RequirementReviewCount, models.RequirementHelpfulVotes,
		models.RequirementSalesCount, models.RequirementSalesRevenue,
		models.RequirementProductCount, models.RequirementStreakDays,
		models.RequirementDistinctCategories, models.RequirementOwnedProducts,
		models.RequirementPurchaseTimeRange,
	}
	for _, reqType := range all {
		if _, ok := seen[reqType]; !ok {
			t.Errorf("requirement type %s is unreachable from any trigger", reqType)
		}
	}
}

func TestCatalogRequirementsAreTriggered(t *testing.T) {
	reachable := map[models.RequirementType]bool{}
	for _, types := range models.TriggerRequirementTypes {
		for _, reqType := range types {
			reachable[reqType] = true
		}
	}
	for _, def := range models.AchievementCatalog {
		if !reachable[def.Requirement.Type] {
			t.Errorf("catalog achievement %s has untriggerable requirement type %s", def.Slug, def.Requirement.Type)
		}
	}
}
