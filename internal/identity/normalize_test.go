package identity

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Buy milk  ", "Buy milk"},
		{"a\x00b", "ab"},
		{"a\x01\x02\x7fb", "ab"},
		{"keep\ttabs and\nnewlines", "keep\ttabs and\nnewlines"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := SanitizeText(c.in); got != c.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("NormalizeEmail: got %q", got)
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "first.last+tag@sub.example.org"} {
		if !ValidEmail(ok) {
			t.Fatalf("expected %q to be valid", ok)
		}
	}
	for _, bad := range []string{"", "plain", "a@b", "@example.com", "a b@c.de"} {
		if ValidEmail(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}
