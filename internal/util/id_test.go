package util

import (
	"sort"
	"testing"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewID_Valid(t *testing.T) {
	id := NewID()
	if !IsValidID(id) {
		t.Errorf("NewID() = %q, not a valid UUID", id)
	}
}

func TestNewID_SortsByCreation(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = NewID()
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("IDs generated in sequence do not sort by creation order")
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"well-formed", "01890a5d-ac96-774b-bcce-b302099a8057", true},
		{"empty", "", false},
		{"garbage", "not-a-uuid", false},
		{"truncated", "01890a5d-ac96-774b-bcce", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidID(tt.id); got != tt.want {
				t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
