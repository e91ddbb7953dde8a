package allowlist

import "testing"

func TestAllowed_EmptyListIsPermissive(t *testing.T) {
	a := New(nil)

	for _, host := range []string{"example.com", "evil.example", "localhost"} {
		if !a.Allowed(host) {
			t.Errorf("Allowed(%q) = false, want true with empty allowlist", host)
		}
	}
	if !a.Permissive() {
		t.Error("Permissive() = false, want true")
	}
}

func TestAllowed_ExactMatch(t *testing.T) {
	a := New([]string{"example.com", "news.example.org"})

	tests := []struct {
		name string
		host string
		want bool
	}{
		{"listed host", "example.com", true},
		{"second listed host", "news.example.org", true},
		{"unlisted host", "evil.com", false},
		{"subdomain of listed host", "sub.example.com", false},
		{"case differs", "Example.com", false},
		{"empty host", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Allowed(tt.host); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestNew_DropsBlankEntries(t *testing.T) {
	// A trailing comma in ALLOWED_HOSTS yields a blank entry; it must
	// not flip the list into permissive-looking behavior.
	a := New([]string{"example.com", ""})

	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
	if a.Allowed("evil.com") {
		t.Error("Allowed(evil.com) = true, want false")
	}
}
