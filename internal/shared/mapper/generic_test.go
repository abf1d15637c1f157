package mapper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, func(i int) string { return "" }))
	assert.Equal(t, []string{}, MapSlice([]int{}, func(i int) string { return "" }))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, func(i int) string { return fmt.Sprint(i) }))
}

func TestMapSliceWithError(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		mapFunc     func(int) (string, error)
		want        []string
		errContains string
	}{
		{
			name:    "nil input returns nil",
			input:   nil,
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("%d", i), nil },
			want:    nil,
		},
		{
			name:    "successful mapping",
			input:   []int{1, 2, 3},
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("num_%d", i), nil },
			want:    []string{"num_1", "num_2", "num_3"},
		},
		{
			name:  "stops at first error",
			input: []int{1, 2, 3},
			mapFunc: func(i int) (string, error) {
				if i == 2 {
					return "", errors.New("bad row 2")
				}
				return fmt.Sprint(i), nil
			},
			errContains: "bad row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSliceWithError(tt.input, tt.mapFunc)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
