package service

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Tomatoes", "tomatoes"},
		{"spaces", "Root Crops", "root-crops"},
		{"punctuation", "Fresh  Catfish!!", "fresh-catfish"},
		{"mixed runs", "A & B -- C", "a-b-c"},
		{"leading and trailing", "  --Hello--  ", "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDisambiguateSlug(t *testing.T) {
	first := DisambiguateSlug("frozen-chicken")
	second := DisambiguateSlug("frozen-chicken")

	if !strings.HasPrefix(first, "frozen-chicken-") {
		t.Fatalf("expected prefix preserved, got %q", first)
	}
	if len(first) != len("frozen-chicken-")+4 {
		t.Fatalf("expected 4-char suffix, got %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct suffixes, got %q twice", first)
	}
}
