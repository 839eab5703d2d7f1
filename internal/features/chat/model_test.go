package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codearc/codearc-server/pkg/types"
)

func TestInWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		sentAt time.Time
		want   bool
	}{
		{"just sent", now, true},
		{"one hour old", now.Add(-time.Hour), true},
		{"exactly at the cutoff", now.Add(-DisplayWindow), true},
		{"one second past the cutoff", now.Add(-DisplayWindow - time.Second), false},
		{"days old", now.Add(-96 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InWindow(tt.sentAt, now))
		})
	}
}

func TestContactRoles(t *testing.T) {
	assert.ElementsMatch(t,
		[]types.Role{types.RoleMentor, types.RoleAdmin},
		contactRoles(types.RoleStudent))

	assert.ElementsMatch(t,
		[]types.Role{types.RoleStudent, types.RoleAdmin},
		contactRoles(types.RoleMentor))

	assert.ElementsMatch(t,
		[]types.Role{types.RoleStudent, types.RoleMentor, types.RoleAdmin},
		contactRoles(types.RoleAdmin))

	assert.Empty(t, contactRoles(types.Role("unknown")))
}
