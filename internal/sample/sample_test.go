package sample

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDrivers(t *testing.T) {
	got := Drivers()
	if len(got) != 4 {
		t.Fatalf("len(Drivers()) = %d, want 4", len(got))
	}
	if got[0].FullName() != "Max Verstappen" || got[0].Key() != "1-Verstappen" {
		t.Fatalf("first driver = %+v, want Max Verstappen", got[0])
	}
	got[0].LastName = "changed"
	if Drivers()[0].LastName != "Verstappen" {
		t.Fatal("sample roster was mutated through a returned slice")
	}
}

func TestRaces(t *testing.T) {
	got := Races()
	if len(got) != 2 {
		t.Fatalf("len(Races()) = %d, want 2", len(got))
	}
	bahrain := got[0]
	if bahrain.Results[2].DriverName != "Carlos Sainz" || !bahrain.Results[2].FastestLap {
		t.Fatalf("third in Bahrain = %+v, want Sainz with fastest lap", bahrain.Results[2])
	}
	if !bahrain.TotalPoints().Equal(decimal.NewFromInt(80)) {
		t.Fatalf("Bahrain points = %s, want 80", bahrain.TotalPoints())
	}
	for _, race := range got {
		for i, res := range race.Results {
			if res.Position != i+1 {
				t.Fatalf("%s result %d has position %d", race.Name, i, res.Position)
			}
		}
	}

	got[1].Results[0].DriverName = "changed"
	if Races()[1].Results[0].DriverName != "Max Verstappen" {
		t.Fatal("sample races were mutated through a returned slice")
	}
}
