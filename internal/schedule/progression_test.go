package schedule

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/matt5000/slowshakespeare/internal/catalog"
)

var day0 = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	ids := []string{"1", "18", "29"}
	sonnets := make([]catalog.Sonnet, 0, len(ids))
	for _, id := range ids {
		lines := make([]string, catalog.LinesPerSonnet)
		for i := range lines {
			lines[i] = fmt.Sprintf("sonnet %s line %d", id, i+1)
		}
		sonnets = append(sonnets, catalog.Sonnet{ID: id, Lines: lines})
	}
	cat, err := catalog.New(sonnets)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

func TestComputeDayByDay(t *testing.T) {
	cat := testCatalog(t)
	tests := []struct {
		name    string
		days    int
		id      string
		index   int
		learned int
	}{
		{name: "first day", days: 0, id: "1", index: 0, learned: 1},
		{name: "one week in", days: 7, id: "1", index: 0, learned: 8},
		{name: "last day of fortnight", days: 13, id: "1", index: 0, learned: 14},
		{name: "first day of next sonnet", days: 14, id: "18", index: 1, learned: 1},
		{name: "second day of next sonnet", days: 15, id: "18", index: 1, learned: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := day0.AddDate(0, 0, tt.days)
			got := Compute(day0, now, cat, "1")
			if got.Sonnet.ID != tt.id {
				t.Fatalf("expected sonnet %s, got %s", tt.id, got.Sonnet.ID)
			}
			if got.Index != tt.index {
				t.Fatalf("expected index %d, got %d", tt.index, got.Index)
			}
			if got.LinesLearned != tt.learned {
				t.Fatalf("expected %d lines learned, got %d", tt.learned, got.LinesLearned)
			}
			if got.TodayLine() != tt.learned-1 {
				t.Fatalf("expected today line %d, got %d", tt.learned-1, got.TodayLine())
			}
			if want := tt.days%CadenceDays + 1; got.Day != want {
				t.Fatalf("expected day %d, got %d", want, got.Day)
			}
		})
	}
}

func TestComputeWraparound(t *testing.T) {
	cat := testCatalog(t)
	now := day0.AddDate(0, 0, CadenceDays)
	got := Compute(day0, now, cat, "29")
	if got.Index != 0 || got.Sonnet.ID != "1" {
		t.Fatalf("expected wraparound to sonnet 1, got %s at index %d", got.Sonnet.ID, got.Index)
	}
	if got.LinesLearned != 1 {
		t.Fatalf("expected 1 line learned after wraparound, got %d", got.LinesLearned)
	}
}

func TestComputeFutureStart(t *testing.T) {
	cat := testCatalog(t)
	future := Compute(day0.AddDate(0, 0, 30), day0, cat, "18")
	today := Compute(day0, day0, cat, "18")
	if !reflect.DeepEqual(future, today) {
		t.Fatalf("expected future start to behave like day zero, got %+v vs %+v", future, today)
	}
	if future.LinesLearned != 1 || future.Sonnet.ID != "18" {
		t.Fatalf("expected first line of sonnet 18, got %d lines of %s", future.LinesLearned, future.Sonnet.ID)
	}
}

func TestComputeUnknownSelection(t *testing.T) {
	cat := testCatalog(t)
	got := Compute(day0, day0, cat, "999")
	if got.Index != 0 || got.Sonnet.ID != "1" {
		t.Fatalf("expected fallback to first catalog entry, got %s at index %d", got.Sonnet.ID, got.Index)
	}
}

func TestComputeLargeElapsed(t *testing.T) {
	cat := testCatalog(t)
	// 1000003 days: 71428 full fortnights plus 11 days.
	now := day0.AddDate(0, 0, 1000003)
	got := Compute(day0, now, cat, "1")
	if got.Index != 71428%3 {
		t.Fatalf("expected index %d, got %d", 71428%3, got.Index)
	}
	if got.LinesLearned != 12 {
		t.Fatalf("expected 12 lines learned, got %d", got.LinesLearned)
	}
}

func TestComputePeriodicity(t *testing.T) {
	cat := testCatalog(t)
	for days := 0; days <= 4*CadenceDays; days++ {
		now := day0.AddDate(0, 0, days)
		got := Compute(day0, now, cat, "1")
		if want := days%CadenceDays + 1; got.Day != want {
			t.Fatalf("day %d: expected day-in-fortnight %d, got %d", days, want, got.Day)
		}
		if want := days%CadenceDays + 1; got.LinesLearned != want {
			t.Fatalf("day %d: expected %d lines learned, got %d", days, want, got.LinesLearned)
		}
		if got.TodayLine() < 0 || got.TodayLine() >= len(got.Sonnet.Lines) {
			t.Fatalf("day %d: today line %d out of range", days, got.TodayLine())
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	cat := testCatalog(t)
	now := day0.AddDate(0, 0, 9)
	first := Compute(day0, now, cat, "18")
	second := Compute(day0, now, cat, "18")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestComputeClampsShortItems(t *testing.T) {
	cat, err := catalog.New([]catalog.Sonnet{
		{ID: "couplet", Lines: []string{"first", "second"}},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	got := Compute(day0, day0.AddDate(0, 0, 9), cat, "couplet")
	if got.LinesLearned != 2 {
		t.Fatalf("expected lines learned clamped to 2, got %d", got.LinesLearned)
	}
	if got.Day != 10 {
		t.Fatalf("expected day 10, got %d", got.Day)
	}
}

func TestComputeSubDayDifferencing(t *testing.T) {
	cat := testCatalog(t)
	lateSameDay := Compute(day0, day0.Add(23*time.Hour+59*time.Minute), cat, "1")
	if lateSameDay.LinesLearned != 1 {
		t.Fatalf("expected 1 line before a full day elapses, got %d", lateSameDay.LinesLearned)
	}
	justOver := Compute(day0, day0.Add(24*time.Hour+time.Second), cat, "1")
	if justOver.LinesLearned != 2 {
		t.Fatalf("expected 2 lines after a full day elapses, got %d", justOver.LinesLearned)
	}
}

func TestMidnight(t *testing.T) {
	zone := time.FixedZone("TST", -5*3600)
	late := time.Date(2025, 6, 15, 23, 59, 59, 123, zone)
	got := Midnight(late)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, zone)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got.Location() != zone {
		t.Fatalf("expected location preserved, got %v", got.Location())
	}
	if !Midnight(got).Equal(got) {
		t.Fatalf("expected midnight to be a fixed point")
	}
}
