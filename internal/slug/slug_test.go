package slug

import "testing"

// TestGenerate exercises the slug generator with typical product and
// category names, punctuation, and boundary inputs.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Drip Irrigation", want: "drip-irrigation"},
		{name: "mixed case", input: "HDPE Pipes", want: "hdpe-pipes"},
		{name: "parentheses stripped", input: "PV Junction Box (IP68)", want: "pv-junction-box-ip68"},
		{name: "leading and trailing space", input: "  Sprinkler System  ", want: "sprinkler-system"},
		{name: "existing hyphens kept", input: "water-level-controller", want: "water-level-controller"},
		{name: "consecutive separators collapse", input: "Solar -- Solutions", want: "solar-solutions"},
		{name: "punctuation removed", input: "Fittings: Elbows, Tees & Couplers!", want: "fittings-elbows-tees-couplers"},
		{name: "digits preserved", input: "1-Acre Kit", want: "1-acre-kit"},
		{name: "empty string", input: "", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
		{name: "trailing hyphen trimmed", input: "Pumps -", want: "pumps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
