package util

import (
	"testing"
	"time"
)

func TestParseMonthISODate(t *testing.T) {
	got, ok := ParseMonth("2024-03-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected month %v", got)
	}
}

func TestParseMonthYearMonth(t *testing.T) {
	got, ok := ParseMonth("2024-03")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Day() != 1 || got.Month() != time.March {
		t.Fatalf("unexpected month %v", got)
	}
}

func TestParseMonthGarbage(t *testing.T) {
	if _, ok := ParseMonth("not-a-date"); ok {
		t.Fatalf("expected failure")
	}
	if _, ok := ParseMonth(""); ok {
		t.Fatalf("expected failure for empty")
	}
}

func TestNextMonthYearRollover(t *testing.T) {
	got := NextMonth(time.Date(2024, 12, 20, 5, 0, 0, 0, time.UTC))
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected next month %v", got)
	}
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("1,20,000")
	if !ok || v != 120000 {
		t.Fatalf("unexpected amount %v ok=%v", v, ok)
	}
	if _, ok := ParseAmount("n/a"); ok {
		t.Fatalf("expected failure")
	}
}
