package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	fallback := []string{"nfl"}

	t.Setenv("LIST_TEST", "")
	if got := listEnvOrDefault("LIST_TEST", fallback); len(got) != 1 || got[0] != "nfl" {
		t.Fatalf("expected fallback when unset, got %v", got)
	}

	t.Setenv("LIST_TEST", "a, b ,c")
	got := listEnvOrDefault("LIST_TEST", fallback)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected trimmed list, got %v", got)
	}

	t.Setenv("LIST_TEST", " , ,")
	if got := listEnvOrDefault("LIST_TEST", fallback); len(got) != 1 || got[0] != "nfl" {
		t.Fatalf("expected fallback for blank entries, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "")
	if got := intEnvOrDefault("INT_TEST", 14); got != 14 {
		t.Fatalf("expected default when unset, got %d", got)
	}

	t.Setenv("INT_TEST", "30")
	if got := intEnvOrDefault("INT_TEST", 14); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}

	t.Setenv("INT_TEST", "-2")
	if got := intEnvOrDefault("INT_TEST", 14); got != 14 {
		t.Fatalf("expected default for non-positive, got %d", got)
	}

	t.Setenv("INT_TEST", "abc")
	if got := intEnvOrDefault("INT_TEST", 14); got != 14 {
		t.Fatalf("expected default for junk, got %d", got)
	}
}

func TestNonNegativeIntEnvOrDefault(t *testing.T) {
	t.Setenv("NN_TEST", "")
	if got := nonNegativeIntEnvOrDefault("NN_TEST", 120); got != 120 {
		t.Fatalf("expected default when unset, got %d", got)
	}

	t.Setenv("NN_TEST", "0")
	if got := nonNegativeIntEnvOrDefault("NN_TEST", 120); got != 0 {
		t.Fatalf("expected zero to be admitted, got %d", got)
	}

	t.Setenv("NN_TEST", "-5")
	if got := nonNegativeIntEnvOrDefault("NN_TEST", 120); got != 120 {
		t.Fatalf("expected default for negative, got %d", got)
	}
}
