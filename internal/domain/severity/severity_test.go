package severity

import "testing"

func TestAdjust_ComposesAllFactors(t *testing.T) {
	if got := Adjust(10, 70, true, IntensitySevere); got != 21.84 {
		t.Fatalf("expected 21.84, got %v", got)
	}
}

func TestAdjust_Table(t *testing.T) {
	cases := []struct {
		name      string
		base      float64
		age       int
		chronic   bool
		intensity Intensity
		want      float64
	}{
		{"plain", 2, 30, false, IntensityNone, 2},
		{"age 60 is not senior", 2, 60, false, IntensityNone, 2},
		{"senior", 2, 61, false, IntensityNone, 2.6},
		{"chronic", 3, 30, true, IntensityNone, 3.6},
		{"mild", 3, 30, false, IntensityMild, 2.4},
		{"severe", 1, 30, false, IntensitySevere, 1.4},
		{"unknown intensity is neutral", 1, 30, false, Intensity("extreme"), 1},
		{"rounds to 2 decimals", 1, 65, true, IntensityMild, 1.25},
	}

	for _, c := range cases {
		if got := Adjust(c.base, c.age, c.chronic, c.intensity); got != c.want {
			t.Fatalf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestParseIntensity(t *testing.T) {
	cases := map[string]Intensity{
		"severe":   IntensitySevere,
		" Mild ":   IntensityMild,
		"none":     IntensityNone,
		"":         IntensityNone,
		"moderate": IntensityNone,
	}
	for in, want := range cases {
		if got := ParseIntensity(in); got != want {
			t.Fatalf("ParseIntensity(%q): expected %s, got %s", in, want, got)
		}
	}
}
