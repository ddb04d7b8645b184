package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSizeForLevel(t *testing.T) {
	tests := []struct {
		level string
		want  int
		ok    bool
	}{
		{"1", 10, true},
		{"2", 20, true},
		{"3", 30, true},
		{"4", UnlimitedSize, true},
		{"5", 0, false},
		{"", 0, false},
		{"one", 0, false},
	}

	for _, tt := range tests {
		got, ok := MaxSizeForLevel(tt.level)
		assert.Equal(t, tt.ok, ok, "level %q", tt.level)
		assert.Equal(t, tt.want, got, "level %q", tt.level)
	}
}
