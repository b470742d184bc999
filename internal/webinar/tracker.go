package webinar

import (
	"github.com/isqad/livelook-webinar/internal/core"
)

// Tracker derives the local participant's capability flags from
// asynchronous role-change events and classifies each transition.
type Tracker struct {
	session *core.WebinarSession
}

func NewTracker(session *core.WebinarSession) *Tracker {
	return &Tracker{session: session}
}

// ApplyRoleChange updates the session's capability flags from the new
// role set and classifies the transition by comparing the most
// privileged tag of each set. Role sets with no recognized tag degrade
// to all flags false, neither promoted nor demoted.
func (t *Tracker) ApplyRoleChange(oldRoles, newRoles []core.Role) core.RoleTransition {
	t.session.SetRoleFlags(
		core.ContainsRole(newRoles, core.RolePanelist),
		core.ContainsRole(newRoles, core.RoleAttendee),
		core.ContainsRole(newRoles, core.RoleModerator),
	)

	oldRank := core.HighestRank(oldRoles)
	newRank := core.HighestRank(newRoles)

	return core.RoleTransition{
		IsPromoted: newRank > oldRank,
		IsDemoted:  newRank < oldRank,
	}
}
