package domain_test

import (
	"testing"

	"go.trai.ch/forge/internal/core/domain"
)

func TestNeedsRebuild(t *testing.T) {
	entry := &domain.UnitEntry{Hash: "abc"}

	tests := []struct {
		name         string
		entry        *domain.UnitEntry
		currentHash  string
		outputExists bool
		force        bool
		want         bool
	}{
		{"cold cache", nil, "abc", true, false, true},
		{"hash mismatch", entry, "def", true, false, true},
		{"output deleted", entry, "abc", false, false, true},
		{"force bypasses everything", entry, "abc", true, true, true},
		{"clean hit", entry, "abc", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NeedsRebuild(tt.entry, tt.currentHash, tt.outputExists, tt.force)
			if got != tt.want {
				t.Errorf("NeedsRebuild() = %v, want %v", got, tt.want)
			}
		})
	}
}
