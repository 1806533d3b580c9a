package keymap

import "testing"

func TestResolveOrder(t *testing.T) {
	tb := Tables{
		Compact:       map[uint8]Token{60: "t"},
		LowExtension:  map[uint8]Token{60: "low", 30: "1"},
		HighExtension: map[uint8]Token{60: "high", 30: "x", 100: "q"},
	}

	tests := []struct {
		note uint8
		want Token
		ok   bool
	}{
		{60, "t", true},  // compact wins over both extensions
		{30, "1", true},  // low extension wins over high
		{100, "q", true}, // high extension as last resort
		{61, "", false},  // unmapped is a miss, not an error
	}
	for _, tt := range tests {
		got, ok := tb.Resolve(tt.note)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolve(%d) = %q, %v; want %q, %v", tt.note, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	if !Token("!").IsShiftSymbol() {
		t.Error("! should be a shift symbol")
	}
	if Token("c").IsShiftSymbol() || Token("C").IsShiftSymbol() {
		t.Error("letters are not shift symbols")
	}
	if !Token("C").IsUpper() {
		t.Error("C should be uppercase")
	}
	if Token("c").IsUpper() || Token("4").IsUpper() {
		t.Error("lowercase and digits are not uppercase")
	}
	if Token("C").Lower() != "c" {
		t.Errorf("Lower(C) = %q", Token("C").Lower())
	}
}

func TestVelocityMapEmpty(t *testing.T) {
	if _, err := NewVelocityMap(nil); err != ErrEmptyVelocityMap {
		t.Fatalf("expected ErrEmptyVelocityMap, got %v", err)
	}
}

func TestClassifyDeterministicAndClamped(t *testing.T) {
	vm, err := NewVelocityMap(map[int]Token{40: "1", 80: "2", 110: "3", 127: "4"})
	if err != nil {
		t.Fatal(err)
	}

	for v := 0; v <= 127; v++ {
		first := vm.Classify(uint8(v))
		if again := vm.Classify(uint8(v)); again != first {
			t.Fatalf("Classify(%d) not deterministic: %q then %q", v, first, again)
		}
	}

	// Below the smallest threshold the smallest bucket is returned.
	if got := vm.Classify(0); got != "1" {
		t.Errorf("Classify(0) = %q, want boundary bucket 1", got)
	}
	// At the top the largest bucket is returned.
	if got := vm.Classify(127); got != "4" {
		t.Errorf("Classify(127) = %q, want 4", got)
	}
}

func TestClassifySmallTables(t *testing.T) {
	// 1- and 2-element tables must terminate and clamp to the boundaries.
	one, _ := NewVelocityMap(map[int]Token{64: "only"})
	for _, v := range []uint8{0, 64, 127} {
		if got := one.Classify(v); got != "only" {
			t.Errorf("one-bucket Classify(%d) = %q", v, got)
		}
	}

	// With two buckets the midpoint is index 0, which is a boundary, so the
	// search stops there for every velocity.
	two, _ := NewVelocityMap(map[int]Token{40: "soft", 100: "hard"})
	for _, v := range []uint8{10, 64, 127} {
		if got := two.Classify(v); got != "soft" {
			t.Errorf("two-bucket Classify(%d) = %q, want soft", v, got)
		}
	}
}
