package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleAdmin, ActManageUsers))
	assert.False(t, Can(RolePersonnel, ActManageUsers))
	assert.True(t, Can(RoleReferee, ActOfficiateMatches))
	assert.False(t, Can(RoleReferee, ActManageMatches))
	assert.False(t, Can(RoleAdmin, Action("unknown")))
	assert.True(t, Can(RoleParticipant, ActReserveVenues))
	assert.False(t, Can(RoleParticipant, ActManageReservations))
	assert.False(t, Can(RoleReferee, ActReserveVenues))
}

func TestRolesForReturnsCopy(t *testing.T) {
	roles := RolesFor(ActManageVenues)
	roles[0] = RoleViewer
	assert.True(t, Can(RoleAdmin, ActManageVenues))
	assert.Empty(t, RolesFor(Action("unknown")))
}

func TestEveryActionAllowsAdmin(t *testing.T) {
	for a := range permissions {
		assert.True(t, Can(RoleAdmin, a), string(a))
	}
}
