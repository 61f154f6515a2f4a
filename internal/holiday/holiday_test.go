package holiday

import "testing"

func holidayByName(t *testing.T, year int, name string) Holiday {
	t.Helper()
	for _, h := range ForYear(year) {
		if h.Name == name {
			return h
		}
	}
	t.Fatalf("holiday %q not found for %d", name, year)
	return Holiday{}
}

func TestForYearCount(t *testing.T) {
	holidays := ForYear(2026)
	if len(holidays) != 11 {
		t.Fatalf("expected 11 federal holidays, got %d", len(holidays))
	}
	for _, h := range holidays {
		if h.Type != "federal" {
			t.Fatalf("holiday %q has type %q", h.Name, h.Type)
		}
	}
}

func TestFixedDates(t *testing.T) {
	if got := holidayByName(t, 2026, "New Year's Day").Date; got != "2026-01-01" {
		t.Fatalf("new year: got %s", got)
	}
	if got := holidayByName(t, 2026, "Independence Day").Date; got != "2026-07-04" {
		t.Fatalf("july 4: got %s", got)
	}
	if got := holidayByName(t, 2026, "Christmas Day").Date; got != "2026-12-25" {
		t.Fatalf("christmas: got %s", got)
	}
}

func TestNthWeekdayDates(t *testing.T) {
	// 2026: Jan 1 is a Thursday, so the third Monday is Jan 19.
	if got := holidayByName(t, 2026, "Martin Luther King Jr. Day").Date; got != "2026-01-19" {
		t.Fatalf("mlk day: got %s", got)
	}
	// Thanksgiving 2026 is Thursday Nov 26.
	if got := holidayByName(t, 2026, "Thanksgiving Day").Date; got != "2026-11-26" {
		t.Fatalf("thanksgiving: got %s", got)
	}
	// Labor Day 2025 is Monday Sep 1, the degenerate first-day case.
	if got := holidayByName(t, 2025, "Labor Day").Date; got != "2025-09-01" {
		t.Fatalf("labor day: got %s", got)
	}
}

func TestLastWeekday(t *testing.T) {
	// Memorial Day 2026 is Monday May 25.
	if got := holidayByName(t, 2026, "Memorial Day").Date; got != "2026-05-25" {
		t.Fatalf("memorial day: got %s", got)
	}
	// 2021: May 31 is itself a Monday.
	if got := holidayByName(t, 2021, "Memorial Day").Date; got != "2021-05-31" {
		t.Fatalf("memorial day 2021: got %s", got)
	}
}

func TestIsHoliday(t *testing.T) {
	if _, ok := IsHoliday("2026-07-04"); !ok {
		t.Fatal("expected 2026-07-04 to be a holiday")
	}
	if _, ok := IsHoliday("2026-07-05"); ok {
		t.Fatal("expected 2026-07-05 to not be a holiday")
	}
	if _, ok := IsHoliday("not-a-date"); ok {
		t.Fatal("expected malformed date to not be a holiday")
	}
}
