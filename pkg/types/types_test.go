package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleMentor.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestNotificationTypeValid(t *testing.T) {
	for _, nt := range []NotificationType{NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError} {
		assert.True(t, nt.Valid())
	}
	assert.False(t, NotificationType("urgent").Valid())
}
