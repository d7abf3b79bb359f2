package shared

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" || second == "" {
		t.Error("expected non-empty IDs")
	}
	if first == second {
		t.Error("expected unique IDs")
	}
	if len(strings.Split(first, "-")) != 5 {
		t.Errorf("unexpected UUID shape: %s", first)
	}
}

func TestMarshalJSON(t *testing.T) {
	value := map[string]string{"title": "Etude"}

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(value, false)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if string(data) != `{"title":"Etude"}` {
			t.Errorf("MarshalJSON() = %s", data)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		data, err := MarshalJSON(value, true)
		if err != nil {
			t.Fatalf("MarshalJSON() error = %v", err)
		}
		if !strings.Contains(string(data), "\n  ") {
			t.Errorf("expected indented output, got %s", data)
		}
	})
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Moonlight Sonata", "moonlight sonata"},
		{"  Etude  ", "etude"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
