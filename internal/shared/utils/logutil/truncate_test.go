package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "empty", input: "", maxLen: 10, want: ""},
		{name: "zero max", input: "abc", maxLen: 0, want: "..."},
		{name: "shorter", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact", input: "hello", maxLen: 5, want: "hello"},
		{name: "longer", input: "barrier stuck open", maxLen: 7, want: "barrier..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}
