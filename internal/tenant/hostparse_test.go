package tenant

import "testing"

func TestExtractSubdomain(t *testing.T) {
	cases := []struct {
		host string
		want string
		ok   bool
	}{
		{"acme.fluke.xyz", "acme", true},
		{"acme.fluke.xyz:443", "acme", true},
		{"shop.store.example.co.uk", "shop", true},
		{"example.com", "", false},
		{"example.com:8080", "", false},
		{"localhost", "", false},
		{"localhost:3000", "", false},
		{"127.0.0.1", "", false},
		{"127.0.0.1:3000", "", false},
		{"acme.localhost", "acme", true},
		{"acme.localhost:3000", "acme", true},
		{"", "", false},
		{".", "", false},
		{"..", "", false},
		{":3000", "", false},
	}

	for _, tc := range cases {
		got, ok := ExtractSubdomain(tc.host)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ExtractSubdomain(%q) = (%q, %v), want (%q, %v)",
				tc.host, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsMainDomain(t *testing.T) {
	if !IsMainDomain("example.com") {
		t.Error("example.com should be main domain")
	}
	if !IsMainDomain("localhost:3000") {
		t.Error("localhost:3000 should be main domain")
	}
	if IsMainDomain("acme.fluke.xyz") {
		t.Error("acme.fluke.xyz should not be main domain")
	}
	if IsMainDomain("acme.localhost:3000") {
		t.Error("acme.localhost:3000 should not be main domain")
	}
}
