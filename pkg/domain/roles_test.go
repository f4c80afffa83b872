package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("hr_manager")
	require.NoError(t, err)
	assert.Equal(t, RoleHRManager, r)
	assert.True(t, r.IsAdmin())

	_, err = ParseRole("root")
	require.Error(t, err)
	assert.False(t, RoleVerifier.IsAdmin())
}

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleSuperAdmin, nil, PermManageAppeals))
	assert.True(t, Can(RoleHRStaff, []Permission{PermViewAppeals}, PermViewAppeals))
	assert.False(t, Can(RoleHRStaff, []Permission{PermViewAppeals}, PermManageAppeals))
	assert.False(t, Can(RoleVerifier, nil, PermViewAppeals))
}
