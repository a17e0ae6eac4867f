package handlers

import (
	"testing"
	"time"

	"marketplace-gamification/models"
)

func TestNextActivityCursor(t *testing.T) {
	at := func(sec int64) models.XPTransaction {
		return models.XPTransaction{CreatedAt: time.Unix(sec, 0).UTC()}
	}

	t.Run("empty page has no cursor", func(t *testing.T) {
		if got := nextActivityCursor(nil, 20); got != "" {
			t.Errorf("cursor = %q, want empty", got)
		}
	})

	t.Run("short page is the last page", func(t *testing.T) {
		txns := []models.XPTransaction{at(300), at(200), at(100)}
		if got := nextActivityCursor(txns, 20); got != "" {
			t.Errorf("cursor = %q, want empty", got)
		}
	})

	t.Run("full page points at the last row", func(t *testing.T) {
		txns := []models.XPTransaction{at(300), at(200), at(100)}
		got := nextActivityCursor(txns, 3)
		want := time.Unix(100, 0).UTC().Format(time.RFC3339Nano)
		if got != want {
			t.Errorf("cursor = %q, want %q", got, want)
		}
	})
}
