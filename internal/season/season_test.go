package season

import (
	"errors"
	"testing"
)

func testResolver() *Resolver {
	return New(map[string]Table{
		"softball": NewTable(map[int]int{2020: 2, 2021: 4, 2022: 13, 2023: 14}).
			WithAliases(map[int]int{39: 2022, 106: 2023}),
		"basketball": NewTable(map[int]int{2022: 6, 2023: 73}),
	})
}

func TestSeasonToID(t *testing.T) {
	r := testResolver()
	tests := []struct {
		sport string
		year  int
		want  int
	}{
		{"softball", 2020, 2},
		{"softball", 2022, 13},
		{"basketball", 2023, 73},
	}
	for _, tt := range tests {
		got, err := r.SeasonToID(tt.sport, tt.year)
		if err != nil || got != tt.want {
			t.Errorf("SeasonToID(%q, %d) = %d, %v; want %d", tt.sport, tt.year, got, err, tt.want)
		}
	}
}

func TestAliasesResolveToSameYear(t *testing.T) {
	r := testResolver()
	for id, want := range map[int]int{13: 2022, 39: 2022, 14: 2023, 106: 2023} {
		got, err := r.IDToSeason("softball", id)
		if err != nil || got != want {
			t.Errorf("IDToSeason(softball, %d) = %d, %v; want %d", id, got, err, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := testResolver()
	for _, sport := range []string{"softball", "basketball"} {
		table, _ := r.Table(sport)
		for _, id := range table.ByYear {
			year, err := r.IDToSeason(sport, id)
			if err != nil {
				t.Fatalf("IDToSeason(%q, %d) error = %v", sport, id, err)
			}
			back, err := r.SeasonToID(sport, year)
			if err != nil || back != id {
				t.Errorf("SeasonToID(IDToSeason(%d)) = %d, %v; want %d", id, back, err, id)
			}
		}
	}
}

func TestUnsupported(t *testing.T) {
	r := testResolver()
	tests := []struct {
		name string
		call func() error
		key  string
	}{
		{"unknown year", func() error { _, err := r.SeasonToID("softball", 1999); return err }, "year"},
		{"unknown id", func() error { _, err := r.IDToSeason("basketball", 5); return err }, "id"},
		{"unknown league", func() error { _, err := r.SeasonToID("cricket", 2023); return err }, "league"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrUnsupportedSeason) {
				t.Fatalf("error = %v, want ErrUnsupportedSeason", err)
			}
			var ue *UnsupportedSeasonError
			if !errors.As(err, &ue) || ue.Key != tt.key {
				t.Errorf("error key = %v, want %q", ue, tt.key)
			}
		})
	}
}

func TestResolverIsolatedFromInput(t *testing.T) {
	in := map[string]Table{"volleyball": NewTable(map[int]int{2021: 3})}
	r := New(in)
	in["volleyball"].ByYear[2021] = 99
	if got, _ := r.SeasonToID("volleyball", 2021); got != 3 {
		t.Errorf("SeasonToID() = %d after caller mutation, want 3", got)
	}
}

func TestYears(t *testing.T) {
	got := NewTable(map[int]int{2023: 14, 2020: 2, 2022: 13}).Years()
	want := []int{2020, 2022, 2023}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Years() = %v, want %v", got, want)
		}
	}
}
