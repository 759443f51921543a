package slug

import (
	"regexp"
	"testing"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World! 2026", "hello-world-2026"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case", "upper-case"},
		{"many!!!separators***here", "many-separators-here"},
		{"--edge--hyphens--", "edge-hyphens"},
		{"", ""},
		{"!!!", ""},
	}

	for _, c := range cases {
		if got := Generate(c.in); got != c.want {
			t.Errorf("Generate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9-]+$`)
	titles := []string{
		"Health Camp @ Panchayat Bhavan",
		"New Bus Route: Rampur → Sadar",
		"जल जीवन मिशन update 2026",
		"Sale!!! 50% off",
		"a",
	}
	for _, title := range titles {
		got := Generate(title)
		if got == "" {
			continue
		}
		if !shape.MatchString(got) {
			t.Errorf("Generate(%q) = %q: not a valid slug", title, got)
		}
		if got[0] == '-' || got[len(got)-1] == '-' {
			t.Errorf("Generate(%q) = %q: leading or trailing hyphen", title, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("health-camp-2026") {
		t.Error("expected health-camp-2026 to be valid")
	}
	for _, bad := range []string{"", "Has Upper", "spaces here", "unicode-ऊ"} {
		if IsValid(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestEnsureUniqueNoCollision(t *testing.T) {
	got := EnsureUnique("health-camp", func(string) bool { return false })
	if got != "health-camp" {
		t.Errorf("EnsureUnique without collision: got %q, want %q", got, "health-camp")
	}
}

func TestEnsureUniqueCollision(t *testing.T) {
	taken := map[string]bool{"health-camp": true}
	got := EnsureUnique("health-camp", func(s string) bool { return taken[s] })
	if got == "health-camp" {
		t.Fatal("expected a suffixed slug on collision")
	}
	if !IsValid(got) {
		t.Errorf("suffixed slug %q is not valid", got)
	}
	// Two records created from the same title get distinct slugs.
	taken[got] = true
	second := EnsureUnique("health-camp", func(s string) bool { return taken[s] })
	if second == "health-camp" {
		t.Fatal("expected a suffixed slug on second collision")
	}
}
