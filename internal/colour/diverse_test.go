package colour

import "testing"

func TestVaryingColorsRejectsNearDuplicates(t *testing.T) {
	// With a near-duplicate red in the input, the two survivors must
	// not be the two reds.
	input := []string{"#ff0000", "#fe0101", "#00ff00", "#0000ff"}

	got := VaryingColors(input, 2)
	if len(got) != 2 {
		t.Fatalf("result length = %d, want 2", len(got))
	}
	if got[0] == "#ff0000" && got[1] == "#fe0101" {
		t.Errorf("near-duplicates survived together: %v", got)
	}
	// Selection is seeded with the first input colour.
	if got[0] != "#ff0000" {
		t.Errorf("first selected = %s, want #ff0000", got[0])
	}
}

func TestVaryingColorsShortInput(t *testing.T) {
	input := []string{"#112233", "#445566"}

	got := VaryingColors(input, 4)
	if len(got) != 2 {
		t.Fatalf("result length = %d, want 2", len(got))
	}
	for i := range input {
		if got[i] != input[i] {
			t.Errorf("short input reordered: %v", got)
		}
	}

	// The input slice must not be aliased.
	got[0] = "#000000"
	if input[0] != "#112233" {
		t.Error("VaryingColors aliased its input")
	}
}

func TestVaryingColorsExactLength(t *testing.T) {
	input := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff"}
	for n := 1; n <= len(input); n++ {
		got := VaryingColors(input, n)
		if len(got) != n {
			t.Errorf("VaryingColors(_, %d) length = %d", n, len(got))
		}
	}
}

func TestVaryingColorsDeterministic(t *testing.T) {
	input := []string{"#102030", "#112131", "#a0b0c0", "#ffffff", "#000000", "#ff8800"}

	first := VaryingColors(input, 3)
	second := VaryingColors(input, 3)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("selection diverges at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestVaryingColorsZeroCount(t *testing.T) {
	if got := VaryingColors([]string{"#ff0000"}, 0); got != nil {
		t.Errorf("VaryingColors(_, 0) = %v, want nil", got)
	}
}

func TestVaryingColorsSkipsUnparseable(t *testing.T) {
	input := []string{"#ff0000", "garbage", "#00ff00", "#0000ff"}

	got := VaryingColors(input, 2)
	if len(got) != 2 {
		t.Fatalf("result length = %d, want 2", len(got))
	}
	for _, c := range got[1:] {
		if c == "garbage" {
			t.Errorf("unparseable colour selected: %v", got)
		}
	}
}
