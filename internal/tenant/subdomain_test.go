package tenant

import "testing"

func TestSanitizeSubdomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ACME CO", "acme-co"},
		{"ACME!! Co", "acme-co"},
		{"acme", "acme"},
		{"-acme-", "acme"},
		{"Acme_Store", "acme-store"},
		{"a--b", "a-b"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeSubdomain(tc.in); got != tc.want {
			t.Errorf("SanitizeSubdomain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeSubdomainIdempotent(t *testing.T) {
	inputs := []string{"ACME CO", "acme", "-a-b-", "Shop 42!", "", "x"}
	for _, in := range inputs {
		once := SanitizeSubdomain(in)
		twice := SanitizeSubdomain(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidSubdomain(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"acme", true},
		{"acme-co", true},
		{"a1b", true},
		{"ab", false}, // below length floor
		{"a", false},
		{"", false},
		{"-abc", false},
		{"abc-", false},
		{"Acme", false}, // uppercase never valid, sanitize first
		{"abc def", false},
		{string(make([]byte, 64)), false},
	}
	for _, tc := range cases {
		if got := ValidSubdomain(tc.in); got != tc.want {
			t.Errorf("ValidSubdomain(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeThenValid(t *testing.T) {
	if !ValidSubdomain(SanitizeSubdomain("ACME!! Co")) {
		t.Error("sanitized 'ACME!! Co' should be valid")
	}
	if ValidSubdomain(SanitizeSubdomain("!")) {
		t.Error("sanitized '!' should not be valid")
	}
}
