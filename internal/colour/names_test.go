package colour

import "testing"

func TestEstimateNamesExact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "black", input: "#000000", want: "black"},
		{name: "white", input: "#ffffff", want: "white"},
		{name: "red", input: "#ff0000", want: "red"},
		{name: "uppercase still matches", input: "#FF0000", want: "red"},
		{name: "rebeccapurple", input: "#663399", want: "rebeccapurple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateNames([]string{tt.input})
			if len(got) != 1 {
				t.Fatalf("result length = %d, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("EstimateNames(%q) = %q, want %q", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestEstimateNamesNearest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "near black", input: "#010101", want: "black"},
		{name: "near white", input: "#fefefe", want: "white"},
		{name: "near red", input: "#fe0101", want: "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateNames([]string{tt.input})
			if got[0] != tt.want {
				t.Errorf("EstimateNames(%q) = %q, want %q", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestEstimateNamesOrderPreserving(t *testing.T) {
	input := []string{"#ff0000", "#0000ff", "#008000"}
	want := []string{"red", "blue", "green"}

	got := EstimateNames(input)
	if len(got) != len(input) {
		t.Fatalf("result length = %d, want %d", len(got), len(input))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEstimateNamesInvalid(t *testing.T) {
	got := EstimateNames([]string{"not-a-colour", "#ff0000"})
	if got[0] != "" {
		t.Errorf("invalid colour named %q, want empty string", got[0])
	}
	if got[1] != "red" {
		t.Errorf("valid colour named %q, want red", got[1])
	}
}

func TestEstimateNamesEmpty(t *testing.T) {
	if got := EstimateNames(nil); len(got) != 0 {
		t.Errorf("EstimateNames(nil) returned %v, want empty", got)
	}
}

func TestAliasedHexKeepsFirstTableEntry(t *testing.T) {
	// aqua and cyan share #00ffff; table order puts aqua first.
	got := EstimateNames([]string{"#00ffff"})
	if got[0] != "aqua" {
		t.Errorf("EstimateNames(#00ffff) = %q, want aqua", got[0])
	}
}
