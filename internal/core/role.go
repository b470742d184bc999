package core

// Role is a role of the local participant within a webinar
type Role string

const (
	// RoleAttendee is a regular webinar attendee
	RoleAttendee Role = "ATTENDEE"
	// RolePanelist is a participant presenting in the webinar
	RolePanelist Role = "PANELIST"
	// RoleModerator is a manager-capable role (moderator, co-host)
	RoleModerator Role = "MODERATOR"
)

// roleRanks is the total privilege order used to classify role transitions
var roleRanks = map[Role]int{
	RoleAttendee:  0,
	RolePanelist:  1,
	RoleModerator: 2,
}

// unrankedRole ranks below every recognized role, so an unknown tag
// never counts as a promotion
const unrankedRole = -1

// Rank returns the privilege rank of the role
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return unrankedRole
	}
	return rank
}

// RolesFromStrings converts raw role tags from an event payload.
// Unrecognized tags are kept as-is and rank below ATTENDEE.
func RolesFromStrings(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, tag := range raw {
		roles = append(roles, Role(tag))
	}
	return roles
}

// HighestRank returns the rank of the most privileged role in the set
func HighestRank(roles []Role) int {
	highest := unrankedRole
	for _, role := range roles {
		if rank := role.Rank(); rank > highest {
			highest = rank
		}
	}
	return highest
}

// ContainsRole reports whether the set carries the given role
func ContainsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleTransition is the classification of a role change of the local participant
type RoleTransition struct {
	IsPromoted bool `json:"is_promoted"`
	IsDemoted  bool `json:"is_demoted"`
}
