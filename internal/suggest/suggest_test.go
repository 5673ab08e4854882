package suggest

import (
	"slices"
	"testing"
)

func TestSimilar(t *testing.T) {
	t.Parallel()

	known := []string{"main", "feature/login", "feature/logout", "release-1.0"}

	tests := []struct {
		name  string
		input string
		limit int
		want  []string
	}{
		{"exact match suggests nothing", "main", 3, nil},
		{"empty input", "", 3, nil},
		{"abbreviation", "ftlogin", 3, []string{"feature/login"}},
		{"longer than known", "mainline", 3, []string{"main"}},
		{"no match", "zzz", 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Similar(tt.input, known, tt.limit)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Similar(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimilar_Limit(t *testing.T) {
	t.Parallel()

	got := Similar("feat", []string{"feature/a", "feature/b", "feature/c"}, 2)
	if len(got) != 2 {
		t.Fatalf("Similar() returned %d names, want 2: %v", len(got), got)
	}
}
