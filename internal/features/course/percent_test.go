package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"zero chapters", 0, 0, 0},
		{"zero chapters with stray rows", 3, 0, 0},
		{"nothing done", 0, 10, 0},
		{"all done", 10, 10, 100},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"exact half", 5, 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.completed, tt.total))
		})
	}
}
