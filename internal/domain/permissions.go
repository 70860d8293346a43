package domain

import "sort"

// Action names a role-gated write. The server enforces it on routes; clients
// use the same table only to hide what the caller cannot do.
type Action string

const (
	ActManageUsers          Action = "users.manage"
	ActManageInventory      Action = "inventory.manage"
	ActAssign               Action = "assignments.create"
	ActManageVenues         Action = "venues.manage"
	ActManageCompetitions   Action = "competitions.manage"
	ActRegisterParticipant  Action = "participants.register"
	ActManageParticipants   Action = "participants.manage"
	ActManageMatches        Action = "matches.manage"
	ActOfficiateMatches     Action = "matches.officiate"
	ActViewInventoryReports Action = "inventory.reports"
	ActReserveVenues        Action = "reservations.create"
	ActManageReservations   Action = "reservations.manage"
)

var permissions = map[Action][]UserRole{
	ActManageUsers:          {RoleAdmin},
	ActManageInventory:      {RoleAdmin},
	ActAssign:               {RoleAdmin},
	ActManageVenues:         {RoleAdmin, RoleOrganizer},
	ActManageCompetitions:   {RoleAdmin, RoleOrganizer},
	ActRegisterParticipant:  {RoleAdmin, RoleOrganizer, RoleParticipant},
	ActManageParticipants:   {RoleAdmin, RoleOrganizer},
	ActManageMatches:        {RoleAdmin, RoleOrganizer},
	ActOfficiateMatches:     {RoleAdmin, RoleOrganizer, RoleReferee},
	ActViewInventoryReports: {RoleAdmin, RolePersonnel},
	ActReserveVenues:        {RoleAdmin, RoleOrganizer, RoleParticipant},
	ActManageReservations:   {RoleAdmin, RoleOrganizer},
}

// RolesFor lists the roles allowed to perform a. Unknown actions allow nobody.
func RolesFor(a Action) []UserRole {
	roles := permissions[a]
	out := make([]UserRole, len(roles))
	copy(out, roles)
	return out
}

func Can(role UserRole, a Action) bool {
	for _, r := range permissions[a] {
		if r == role {
			return true
		}
	}
	return false
}

// Actions lists every known action in a stable order.
func Actions() []Action {
	out := make([]Action, 0, len(permissions))
	for a := range permissions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
