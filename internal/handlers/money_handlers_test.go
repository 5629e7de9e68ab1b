package handlers

import (
	"testing"
	"time"
)

func TestPeriodStartCalendarBoundaries(t *testing.T) {
	// Среда, середина месяца
	now := time.Date(2025, time.March, 12, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		period string
		want   time.Time
		ok     bool
	}{
		{"daily", time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), true},
		{"weekly", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), true},
		{"monthly", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"yearly", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := periodStart(tt.period, now)
		if ok != tt.ok {
			t.Errorf("periodStart(%q): ok = %v, ожидали %v", tt.period, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("periodStart(%q) = %v, ожидали %v", tt.period, got, tt.want)
		}
	}
}

// Воскресенье относится к неделе, начавшейся в предыдущий понедельник.
func TestPeriodStartWeeklyOnSunday(t *testing.T) {
	now := time.Date(2025, time.March, 16, 9, 0, 0, 0, time.UTC)
	got, ok := periodStart("weekly", now)
	if !ok {
		t.Fatal("weekly должен быть допустимым периодом")
	}
	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("начало недели = %v, ожидали %v", got, want)
	}
}

// Первое число месяца: начало месяца — сам этот день, а не прошлый месяц.
func TestPeriodStartMonthlyOnFirstDay(t *testing.T) {
	now := time.Date(2025, time.July, 1, 0, 0, 1, 0, time.UTC)
	got, ok := periodStart("monthly", now)
	if !ok {
		t.Fatal("monthly должен быть допустимым периодом")
	}
	want := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("начало месяца = %v, ожидали %v", got, want)
	}
}
