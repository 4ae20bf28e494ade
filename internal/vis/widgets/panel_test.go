package widgets

import (
	"image/color"
	"testing"
)

func TestBatteryColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    color.NRGBA
	}{
		{100, colorGood},
		{50.1, colorGood},
		{50, colorFair},
		{20.1, colorFair},
		{20, colorBad},
		{0, colorBad},
	}
	for _, tt := range tests {
		if got := BatteryColor(tt.percent); got != tt.want {
			t.Errorf("BatteryColor(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestEfficiencyColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    color.NRGBA
	}{
		{95, colorGood},
		{80, colorFair},
		{51, colorFair},
		{50, colorBad},
	}
	for _, tt := range tests {
		if got := EfficiencyColor(tt.percent); got != tt.want {
			t.Errorf("EfficiencyColor(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}
