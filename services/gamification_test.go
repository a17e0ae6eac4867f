package services

import "testing"

func TestPurchaseXP(t *testing.T) {
	tests := []struct {
		total float64
		want  int64
	}{
		{0, 10},      // floor
		{0.50, 10},   // rounds to 5, floored to 10
		{1.00, 10},
		{12.50, 125}, // 10 XP per currency unit
		{99.99, 1000},
	}
	for _, tt := range tests {
		if got := PurchaseXP(tt.total); got != tt.want {
			t.Errorf("PurchaseXP(%v) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestSaleXP(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 20}, // floor
		{2, 20},
		{10, 50},
		{100.10, 501}, // rounds to nearest
	}
	for _, tt := range tests {
		if got := SaleXP(tt.amount); got != tt.want {
			t.Errorf("SaleXP(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
