package calculator

import (
	"math"
	"testing"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		bodyFat float64
		deficit int
		want    structs.Targets
	}{
		{
			name:    "medium deficit",
			weight:  80,
			bodyFat: 20,
			deficit: 500,
			want:    structs.Targets{Calories: 1420, Protein: 128, Fat: 64, Carbs: 83},
		},
		{
			name:    "light deficit",
			weight:  80,
			bodyFat: 20,
			deficit: 0,
			want:    structs.Targets{Calories: 1920, Protein: 128, Fat: 64, Carbs: 208},
		},
		{
			name:    "carbs clamp at zero",
			weight:  50,
			bodyFat: 50,
			deficit: 750,
			want:    structs.Targets{Calories: 0, Protein: 50, Fat: 25, Carbs: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Targets(tt.weight, tt.bodyFat, tt.deficit); got != tt.want {
				t.Errorf("Targets(%v, %v, %v) = %+v, want %+v", tt.weight, tt.bodyFat, tt.deficit, got, tt.want)
			}
		})
	}
}

func TestTargetsProteinFormula(t *testing.T) {
	for w := 40.0; w <= 160; w += 7.5 {
		for f := 3.0; f <= 50; f += 3.5 {
			want := int(math.Floor(w*(1-f/100)*2 + 0.5))
			if got := Targets(w, f, 0).Protein; got != want {
				t.Fatalf("protein for %v kg / %v%% = %d, want %d", w, f, got, want)
			}
		}
	}
}

func TestDeficitOrdering(t *testing.T) {
	light, err := TargetsForMode(92, 25, enums.DeficitLight)
	if err != nil {
		t.Fatal(err)
	}
	medium, _ := TargetsForMode(92, 25, enums.DeficitMedium)
	extreme, _ := TargetsForMode(92, 25, enums.DeficitExtreme)

	if !(light.Calories > medium.Calories && medium.Calories > extreme.Calories) {
		t.Fatalf("calories not ordered: light %d, medium %d, extreme %d", light.Calories, medium.Calories, extreme.Calories)
	}
	if light.Calories-medium.Calories != 500 || light.Calories-extreme.Calories != 750 {
		t.Fatalf("unexpected offsets: %d, %d", light.Calories-medium.Calories, light.Calories-extreme.Calories)
	}
}

func TestTargetsForModeUnknown(t *testing.T) {
	if _, err := TargetsForMode(80, 20, "brutal"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
