package symptoms

import (
	"errors"
	"testing"
)

func TestDefault_LoadsVocabulary(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if len(c.All()) != 131 {
		t.Fatalf("expected 131 symptoms, got %d", len(c.All()))
	}

	s, err := c.Lookup("chest_pain")
	if err != nil || s.Priority != 3 {
		t.Fatalf("expected chest_pain with priority 3, got %#v err=%v", s, err)
	}
	s, err = c.Lookup("muscle_pain")
	if err != nil || s.Priority != 1 {
		t.Fatalf("expected default priority 1 for muscle_pain, got %#v err=%v", s, err)
	}
}

func TestLookup_NormalizesInput(t *testing.T) {
	c := MustDefault()

	s, err := c.Lookup("  High Fever ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if s.Name != "high_fever" || s.Priority != 2 {
		t.Fatalf("unexpected symptom %#v", s)
	}

	if _, err := c.Lookup("broken heart"); !errors.Is(err, ErrUnknownSymptom) {
		t.Fatalf("expected ErrUnknownSymptom, got %v", err)
	}
}

func TestResolve_FiltersAndKeepsTopPriority(t *testing.T) {
	c := MustDefault()

	got := c.Resolve([]string{"headache", "made_up", "acidity", "headache", "back pain", "chest_pain"}, 3)

	if len(got) != 3 {
		t.Fatalf("expected 3 symptoms, got %#v", got)
	}
	want := []string{"chest_pain", "acidity", "back_pain"}
	for i, w := range want {
		if got[i].Name != w {
			t.Fatalf("position %d: expected %s, got %s (%#v)", i, w, got[i].Name, got)
		}
	}
}

func TestResolve_NoLimitKeepsInputOrder(t *testing.T) {
	c := MustDefault()

	got := c.Resolve([]string{"nausea", "cough", "fatigue", "headache"}, 0)
	if len(got) != 4 || got[0].Name != "nausea" || got[3].Name != "headache" {
		t.Fatalf("unexpected resolve result %#v", got)
	}
}

func TestParse_RejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("symptoms:\n  - name: cough\n  - name: Cough\n"))
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}
