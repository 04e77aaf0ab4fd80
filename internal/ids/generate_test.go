package ids

import "testing"

func TestGenerate(t *testing.T) {
	id := Generate("task-123", 8)

	if len(id) != 8 {
		t.Fatalf("expected ID length 8, got %d: %q", len(id), id)
	}

	for _, c := range id {
		if !((c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')) {
			t.Errorf("ID contains invalid character %q: %q", c, id)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	id1 := Generate("task-123", 10)
	id2 := Generate("task-123", 10)

	if id1 != id2 {
		t.Errorf("same inputs should produce same ID: got %q and %q", id1, id2)
	}
}

func TestGenerate_DifferentInputs(t *testing.T) {
	id1 := Generate("task-123", 10)
	id2 := Generate("task-999", 10)

	if id1 == id2 {
		t.Error("different inputs should produce different IDs")
	}
}

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		if len(id) != DefaultLength {
			t.Fatalf("expected ID length %d, got %q", DefaultLength, id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestUniqueFrom_UsesGenerator(t *testing.T) {
	queue := []string{"aaaa1111", "bbbb2222", "cccc3333"}
	generate := func() string {
		id := queue[0]
		queue = queue[1:]
		return id
	}

	id := UniqueFrom(generate, func(id string) bool { return id != "cccc3333" })
	if id != "cccc3333" {
		t.Fatalf("expected cccc3333, got %q", id)
	}
}
