package services

import "testing"

func TestInHourWindow(t *testing.T) {
	tests := []struct {
		name             string
		hour, start, end int
		want             bool
	}{
		{"inside simple window", 3, 0, 5, true},
		{"start boundary inclusive", 0, 0, 5, true},
		{"end boundary inclusive", 5, 0, 5, true},
		{"outside simple window", 6, 0, 5, false},
		{"wrapping window late side", 23, 22, 3, true},
		{"wrapping window early side", 2, 22, 3, true},
		{"outside wrapping window", 12, 22, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inHourWindow(tt.hour, tt.start, tt.end); got != tt.want {
				t.Errorf("inHourWindow(%d, %d, %d) = %v, want %v", tt.hour, tt.start, tt.end, got, tt.want)
			}
		})
	}
}
