package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseProgressIsComplete(t *testing.T) {
	tests := []struct {
		name      string
		completed int64
		total     int64
		want      bool
	}{
		{"empty course", 0, 0, false},
		{"empty course with stray rows", 2, 0, false},
		{"nothing done", 0, 3, false},
		{"partway through", 2, 3, false},
		{"all chapters done", 3, 3, true},
		{"single chapter course", 1, 1, true},
		{"more rows than chapters", 4, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CourseProgress{Completed: tt.completed, Total: tt.total}
			assert.Equal(t, tt.want, p.IsComplete())
		})
	}
}
