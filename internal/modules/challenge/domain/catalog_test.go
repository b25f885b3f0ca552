package domain

import (
	"testing"
	"time"
)

func TestCatalogSize(t *testing.T) {
	t.Parallel()

	if len(Catalog()) != 13 {
		t.Fatalf("catalog has %d entries, want 13", len(Catalog()))
	}
	seen := map[string]bool{}
	for _, def := range Catalog() {
		if seen[def.ID] {
			t.Errorf("duplicate id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Goal <= 0 || def.XPReward <= 0 {
			t.Errorf("%s has goal %d reward %d", def.ID, def.Goal, def.XPReward)
		}
	}
}

func TestSelectDailyDeterministic(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC).YearDay()
	first := SelectDaily(day)
	second := SelectDaily(day)

	if len(first) != 3 {
		t.Fatalf("selected %d challenges, want 3", len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("selection not stable: %v vs %v", first[i].ID, second[i].ID)
		}
	}

	want := []string{"time_2h", "time_90min", "perfect_day"}
	for i, id := range want {
		if first[i].ID != id {
			t.Errorf("day %d pick[%d] = %s, want %s", day, i, first[i].ID, id)
		}
	}
}

func TestSelectDailyVariesByDay(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for day := 1; day <= 60; day++ {
		picks := SelectDaily(day)
		key := picks[0].ID + "|" + picks[1].ID + "|" + picks[2].ID
		seen[key] = true
	}
	if len(seen) < 2 {
		t.Fatalf("selection never varies across 60 days")
	}
}
