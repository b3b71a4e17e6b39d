package uuid

import "testing"

func TestNewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if len(first) != 36 {
		t.Errorf("NewID() = %q; want canonical 36-char form", first)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	if first == second {
		t.Error("expected distinct ids across calls")
	}
}
