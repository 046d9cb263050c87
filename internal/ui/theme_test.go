package ui

import (
	"testing"

	"github.com/five82/statekit/internal/prefs"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{current: "Nightfox", want: "Kanagawa"},
		{current: "Kanagawa", want: "Slate"},
		{current: "Slate", want: "Nightfox"},
		{current: "Unknown", want: "Nightfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current); got != tt.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox", got)
	}
}

func TestDefaultPrefsThemeExists(t *testing.T) {
	if GetTheme(prefs.DefaultTheme).Name != prefs.DefaultTheme {
		t.Fatalf("prefs.DefaultTheme %q is not a known theme", prefs.DefaultTheme)
	}
}
