package domain

// Role is a tag held by an acting user. A user may hold several roles at
// once; capabilities are OR-merged across all of them.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleDirector   Role = "director"
	RoleManager    Role = "manager"
	RoleSales      Role = "sales"
	RoleRecruiter  Role = "recruiter"
)

// ParseRole maps a raw role tag to a known Role. Unknown tags are dropped
// by the caller so they grant nothing.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleDirector, RoleManager, RoleSales, RoleRecruiter:
		return Role(s), true
	}
	return "", false
}

// Actor is the acting user as resolved by the identity provider
type Actor struct {
	ID    string `json:"id"`
	Roles []Role `json:"roles"`
}

// Capabilities is the boolean capability set resolved from an actor's roles
type Capabilities struct {
	CanManageCandidates   bool
	CanManageInterviews   bool
	CanManageOffers       bool
	CanOverrideApprovals  bool // approve an offer without being its designated approver
	CanConvertCandidates  bool
	CanManageRequirements bool
	CanCreateProjects     bool
	CanManageMissions     bool
	CanDirectorApprove    bool
	CanHRApprove          bool
	CanSoftDelete         bool
	CanHardDelete         bool
	CanExportReports      bool

	// Identity flags, computed from role membership directly rather than
	// from the OR-merge
	IsSuperAdmin bool
	IsAdmin      bool
	IsHR         bool
	IsDirector   bool
}

// grants returns the capability set a single role contributes. The switch is
// exhaustive over the Role constants; unknown roles grant nothing.
func grants(role Role) Capabilities {
	switch role {
	case RoleSuperAdmin:
		return Capabilities{
			CanManageCandidates:   true,
			CanManageInterviews:   true,
			CanManageOffers:       true,
			CanOverrideApprovals:  true,
			CanConvertCandidates:  true,
			CanManageRequirements: true,
			CanCreateProjects:     true,
			CanManageMissions:     true,
			CanDirectorApprove:    true,
			CanHRApprove:          true,
			CanSoftDelete:         true,
			CanHardDelete:         true,
			CanExportReports:      true,
		}
	case RoleAdmin:
		return Capabilities{
			CanManageCandidates:   true,
			CanManageInterviews:   true,
			CanManageOffers:       true,
			CanOverrideApprovals:  true,
			CanConvertCandidates:  true,
			CanManageRequirements: true,
			CanCreateProjects:     true,
			CanManageMissions:     true,
			CanSoftDelete:         true,
			CanExportReports:      true,
		}
	case RoleHR:
		return Capabilities{
			CanManageCandidates:  true,
			CanManageInterviews:  true,
			CanManageOffers:      true,
			CanConvertCandidates: true,
			CanHRApprove:         true,
			CanExportReports:     true,
		}
	case RoleDirector:
		return Capabilities{
			CanManageOffers:    true,
			CanCreateProjects:  true,
			CanDirectorApprove: true,
			CanExportReports:   true,
		}
	case RoleManager:
		return Capabilities{
			CanManageCandidates:   true,
			CanManageInterviews:   true,
			CanManageRequirements: true,
			CanCreateProjects:     true,
			CanManageMissions:     true,
			CanDirectorApprove:    true,
			CanExportReports:      true,
		}
	case RoleSales:
		return Capabilities{
			CanManageRequirements: true,
		}
	case RoleRecruiter:
		return Capabilities{
			CanManageCandidates: true,
			CanManageInterviews: true,
		}
	}
	return Capabilities{}
}

// ResolveCapabilities merges the capability sets of all held roles with a
// logical OR. It is pure and total: an empty or unknown role set yields the
// all-false default.
func ResolveCapabilities(roles []Role) Capabilities {
	var caps Capabilities
	for _, role := range roles {
		g := grants(role)
		caps.CanManageCandidates = caps.CanManageCandidates || g.CanManageCandidates
		caps.CanManageInterviews = caps.CanManageInterviews || g.CanManageInterviews
		caps.CanManageOffers = caps.CanManageOffers || g.CanManageOffers
		caps.CanOverrideApprovals = caps.CanOverrideApprovals || g.CanOverrideApprovals
		caps.CanConvertCandidates = caps.CanConvertCandidates || g.CanConvertCandidates
		caps.CanManageRequirements = caps.CanManageRequirements || g.CanManageRequirements
		caps.CanCreateProjects = caps.CanCreateProjects || g.CanCreateProjects
		caps.CanManageMissions = caps.CanManageMissions || g.CanManageMissions
		caps.CanDirectorApprove = caps.CanDirectorApprove || g.CanDirectorApprove
		caps.CanHRApprove = caps.CanHRApprove || g.CanHRApprove
		caps.CanSoftDelete = caps.CanSoftDelete || g.CanSoftDelete
		caps.CanHardDelete = caps.CanHardDelete || g.CanHardDelete
		caps.CanExportReports = caps.CanExportReports || g.CanExportReports

		switch role {
		case RoleSuperAdmin:
			caps.IsSuperAdmin = true
		case RoleAdmin:
			caps.IsAdmin = true
		case RoleHR:
			caps.IsHR = true
		case RoleDirector:
			caps.IsDirector = true
		}
	}
	return caps
}

// Capabilities resolves the actor's capability set
func (a Actor) Capabilities() Capabilities {
	return ResolveCapabilities(a.Roles)
}
