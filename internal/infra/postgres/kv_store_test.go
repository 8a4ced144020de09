package postgres

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"ux_assessment_cache": `ux\_assessment\_cache`,
		"100%":                `100\%`,
		`a\b`:                 `a\\b`,
		"plain":               "plain",
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
