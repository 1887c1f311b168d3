package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"already e164", "+233244123456", "+233244123456"},
		{"national format", "0244123456", "+233244123456"},
		{"garbage preserved", "not-a-number", "not-a-number"},
		{"trimmed", "  +233244123456  ", "+233244123456"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeE164(tc.input)
			if got != tc.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
